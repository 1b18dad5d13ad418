package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	SubmitProfile(ctx context.Context) error
	DiscardProfile(ctx context.Context) error
	RemoveApplication(ctx context.Context) error
	ListPosts(ctx context.Context) error
	AddPost(ctx context.Context) error
	RemovePost(ctx context.Context) error
	AddComment(ctx context.Context) error
	RemoveComment(ctx context.Context) error
	AddLike(ctx context.Context) error
	RemoveLike(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, profile, edit, submit, discard, rmapp, " +
		"(l)ist, post, rmpost, comment, uncomment, like, unlike, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the gophsocial CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - whoami         - show the session
//	  - profile        - show the profile
//	  - edit           - edit the profile draft
//	  - submit         - send the profile draft
//	  - discard        - drop the profile draft
//	  - rmapp          - remove an application
//	  - list           - list posts
//	  - post | rmpost  - add / remove a post
//	  - comment | uncomment, like | unlike
//	  - logout         - log out
//
// Errors returned by command handlers are printed and otherwise ignored.
// This keeps the REPL loop resilient and focused on I/O.
//
// Command handlers prompt through the same reader, so a single buffered
// reader must own stdin.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		}

		handler, ok := lookup(a, cmd)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := handler(ctx); err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

// lookup maps a command to its handler. Commands other than register and
// login need a session.
func lookup(a execIface, cmd string) (func(context.Context) error, bool) {
	switch cmd {
	case "register":
		return a.Register, true
	case "login":
		return a.Login, true
	}

	var h func(context.Context) error
	switch cmd {
	case "logout":
		h = a.Logout
	case "whoami":
		h = a.WhoAmI
	case "profile":
		h = a.ShowProfile
	case "edit":
		h = a.EditProfile
	case "submit":
		h = a.SubmitProfile
	case "discard":
		h = a.DiscardProfile
	case "rmapp":
		h = a.RemoveApplication
	case "l", "list":
		h = a.ListPosts
	case "post":
		h = a.AddPost
	case "rmpost":
		h = a.RemovePost
	case "comment":
		h = a.AddComment
	case "uncomment":
		h = a.RemoveComment
	case "like":
		h = a.AddLike
	case "unlike":
		h = a.RemoveLike
	default:
		return nil, false
	}

	return func(ctx context.Context) error {
		if !a.isLoggedIn() {
			return errLoginRequired
		}
		return h(ctx)
	}, true
}
