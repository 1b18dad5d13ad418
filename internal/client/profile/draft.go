package profile

import (
	"net/url"
	"path/filepath"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
)

type Application struct {
	Title       string
	AppURL      string
	AppImageURL string
}

// Draft is the editable copy of a profile.
type Draft struct {
	About       string
	Image       string
	FirstName   string
	LastName    string
	Application Application
}

// Payload builds the updateProfile arguments. Incomplete application data
// is dropped silently.
func (d Draft) Payload() api.ProfileInput {
	in := api.ProfileInput{
		About:     d.About,
		Image:     d.Image,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
	app := api.ApplicationInput{
		Title:       d.Application.Title,
		AppURL:      d.Application.AppURL,
		AppImageURL: d.Application.AppImageURL,
	}
	if app.Complete() {
		in.Application = &app
	}
	return in
}

// seed copies p into every field still at its zero value.
func (d *Draft) seed(p *api.Profile) {
	fill(&d.About, p.About)
	fill(&d.Image, p.Image)
	fill(&d.FirstName, p.FirstName)
	fill(&d.LastName, p.LastName)

	if len(p.Applications) == 0 {
		return
	}
	app := p.Applications[0]
	fill(&d.Application.Title, app.Title)
	fill(&d.Application.AppURL, app.AppURL)
	fill(&d.Application.AppImageURL, app.AppImageURL)
}

func fill(field *string, canonical string) {
	if *field == "" {
		*field = canonical
	}
}

// fileURI turns a local path into an absolute file:// URI.
func fileURI(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
