package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophsocial/internal/client/profile"
)

func (a *App) hasDraft() bool {
	return a.currentDraft() != nil
}

func (a *App) currentDraft() *profile.Synchronizer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draft
}

func (a *App) closeDraft() {
	a.mu.Lock()
	d := a.draft
	a.draft = nil
	a.mu.Unlock()

	if d != nil {
		d.Close()
	}
}

func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

// EditProfile opens a profile draft (loading the server copy on first use)
// and walks through its fields. The draft lives until it is submitted
// successfully, discarded, or the user logs out.
func (a *App) EditProfile(ctx context.Context) error {
	draft := a.currentDraft()
	if draft == nil {
		draft = profile.NewSynchronizer(a.api, profile.WithLogger(a.log))
		if err := draft.Load(ctx); err != nil {
			draft.Close()
			return err
		}
		a.mu.Lock()
		a.draft = draft
		a.mu.Unlock()
	}

	d := draft.View().Draft
	fields := []struct {
		label   string
		current string
		set     func(string)
	}{
		{"About", d.About, draft.SetAbout},
		{"First name", d.FirstName, draft.SetFirstName},
		{"Last name", d.LastName, draft.SetLastName},
		{"Application title", d.Application.Title, draft.SetAppTitle},
		{"Application URL", d.Application.AppURL, draft.SetAppURL},
		{"Application image URL", d.Application.AppImageURL, draft.SetAppImageURL},
	}

	for _, f := range fields {
		v, changed, err := getEdit(a.reader, f.label, f.current, a.out)
		if err != nil {
			return err
		}
		if changed {
			f.set(v)
		}
	}

	img, changed, err := getEdit(a.reader, "Image (URL or local file)", d.Image, a.out)
	if err != nil {
		return err
	}
	if changed {
		if isLocalFile(img) {
			if err := draft.SetImageFile(img); err != nil {
				return err
			}
		} else {
			draft.SetImage(img)
		}
	}

	renderDraft(a.out, draft.View(), draft.Payload().Application != nil)
	fmt.Fprintln(a.out, "Type 'submit' to save or 'discard' to drop the draft.")
	return nil
}

// SubmitProfile sends the draft. On success the draft is closed; on
// failure it stays open for another try.
func (a *App) SubmitProfile(ctx context.Context) error {
	draft := a.currentDraft()
	if draft == nil {
		return errNoDraft
	}

	if err := draft.Submit(ctx); err != nil {
		fmt.Fprintln(a.out, "Profile not saved, the draft is kept.")
		return err
	}

	a.closeDraft()
	fmt.Fprintln(a.out, "Profile saved.")
	return nil
}

func (a *App) DiscardProfile(context.Context) error {
	if !a.hasDraft() {
		return errNoDraft
	}
	a.closeDraft()
	fmt.Fprintln(a.out, "Draft discarded.")
	return nil
}

func (a *App) RemoveApplication(ctx context.Context) error {
	id, err := a.promptID("Enter application id")
	if err != nil {
		return err
	}
	apps, err := a.api.RemoveApplication(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Application removed, %d left.\n", len(apps))
	return nil
}

func isLocalFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
