package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/client/session"
)

func (a *App) getStatus() string {
	s := ""
	if user := a.authService.Session().Username; user != "" {
		s = user + " "
	}
	s += a.currentRoute()
	if a.hasDraft() {
		s += " *draft"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root restores the saved session, starts the expiry watcher and runs the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophsocial CLI (type 'help' for commands)")

	sess, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Error(ctx, "session restore failed", "error", err)
	}
	if sess.LoggedIn {
		a.navigate(session.RouteHome)
		printlnFn("Welcome back,", sess.Username)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSessionWatcher(watchCtx, sessionCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
