package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
	"github.com/dmitrijs2005/gophsocial/internal/client/profile"
)

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderProfile(w io.Writer, p *api.Profile) {
	fmt.Fprintf(w, "%s <%s>\n", p.Username, p.Email)
	fmt.Fprintf(w, "  name:  %s %s\n", orDash(p.FirstName), orDash(p.LastName))
	fmt.Fprintf(w, "  about: %s\n", orDash(p.About))
	fmt.Fprintf(w, "  image: %s\n", orDash(p.Image))
	for _, app := range p.Applications {
		fmt.Fprintf(w, "  app [%s] %s %s (%s)\n", app.ID, app.Title, app.AppURL, app.AppImageURL)
	}
	fmt.Fprintf(w, "  posts: %d\n", len(p.Posts))
}

func renderDraft(w io.Writer, v profile.View, withApplication bool) {
	d := v.Draft
	fmt.Fprintln(w, "Draft:")
	fmt.Fprintf(w, "  name:  %s %s\n", orDash(d.FirstName), orDash(d.LastName))
	fmt.Fprintf(w, "  about: %s\n", orDash(d.About))
	fmt.Fprintf(w, "  image: %s\n", orDash(d.Image))
	fmt.Fprintf(w, "  app:   %s %s %s\n", orDash(d.Application.Title), orDash(d.Application.AppURL), orDash(d.Application.AppImageURL))
	if !withApplication {
		fmt.Fprintln(w, "  (application is incomplete and will not be sent)")
	}
	if v.Status == profile.StatusFailed && v.Err != nil {
		fmt.Fprintf(w, "  last submit failed: %v\n", v.Err)
	}
}

func renderPost(w io.Writer, p api.Post) {
	fmt.Fprintf(w, "[%s] %s, %s\n", p.ID, p.PostAuthor, p.CreatedAt)
	for _, line := range strings.Split(p.PostText, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if p.Image != "" {
		fmt.Fprintf(w, "  image: %s\n", p.Image)
	}
	fmt.Fprintf(w, "  likes: %d\n", len(p.Likes))
	for _, c := range p.Comments {
		fmt.Fprintf(w, "  - [%s] %s: %s\n", c.ID, c.CommentAuthor, c.CommentText)
	}
}
