package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a GraphQL ID. It is sent as a string but read from either a JSON
// string or a JSON number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid ID %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

type User struct {
	ID       ID     `json:"_id"`
	Username string `json:"username"`
}

// AuthPayload is what login and addUser return.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Application struct {
	ID          ID     `json:"_id,omitempty"`
	Title       string `json:"title"`
	AppURL      string `json:"appURL"`
	AppImageURL string `json:"appImageURL"`
}

type Like struct {
	ID        ID     `json:"_id"`
	LikeCount int    `json:"likeCount"`
	LikedBy   string `json:"likedBy"`
}

type Comment struct {
	ID            ID     `json:"_id"`
	CommentText   string `json:"commentText"`
	CommentAuthor string `json:"commentAuthor"`
	CreatedAt     string `json:"createdAt"`
}

type Post struct {
	ID         ID        `json:"_id"`
	PostText   string    `json:"postText"`
	PostAuthor string    `json:"postAuthor"`
	CreatedAt  string    `json:"createdAt"`
	Image      string    `json:"image"`
	Likes      []Like    `json:"likes"`
	Comments   []Comment `json:"comments"`
}

// Profile is the canonical, server-side view of the signed-in user.
type Profile struct {
	ID           ID            `json:"_id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	About        string        `json:"about"`
	Image        string        `json:"image"`
	Applications []Application `json:"applications"`
	Posts        []Post        `json:"posts"`
}

// ApplicationInput is the optional applicationData argument of
// updateProfile.
type ApplicationInput struct {
	Title       string `json:"title"`
	AppURL      string `json:"appURL"`
	AppImageURL string `json:"appImageURL"`
}

// Complete reports whether every field is filled in. The server only
// accepts complete application data.
func (a ApplicationInput) Complete() bool {
	return a.Title != "" && a.AppURL != "" && a.AppImageURL != ""
}

// ProfileInput holds the arguments of updateProfile. Application is nil
// when no application data is sent.
type ProfileInput struct {
	About       string            `json:"about"`
	Image       string            `json:"image"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Application *ApplicationInput `json:"applicationData,omitempty"`
}

// Variables returns the operation variables. applicationData is absent
// unless Application is set.
func (p ProfileInput) Variables() map[string]any {
	vars := map[string]any{
		"about":     p.About,
		"image":     p.Image,
		"firstName": p.FirstName,
		"lastName":  p.LastName,
	}
	if p.Application != nil {
		vars["applicationData"] = map[string]any{
			"title":       p.Application.Title,
			"appURL":      p.Application.AppURL,
			"appImageURL": p.Application.AppImageURL,
		}
	}
	return vars
}
