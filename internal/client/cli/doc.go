// Package cli provides the interactive gophsocial command-line client.
//
// It wires configuration, local storage, the GraphQL client and services,
// and an interactive REPL. Typical flow: restore the saved session, start a
// background watcher that logs out once the session expires, and execute
// user commands.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Profile: show, edit a draft, submit it
//   - Posts: list, add, remove; comments and likes
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
