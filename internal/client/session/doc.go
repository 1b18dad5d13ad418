// Package session holds the client's credential store: the signed session
// token issued by the API at login, persisted in a named slot of the local
// database and rehydrated once at start-up.
//
// The token is opaque to the client. Its payload is decoded without
// verifying the signature, only to learn the expiry and the username for
// display; authorization decisions belong to the server.
//
// Decode failures never escape: a malformed token reads as expired and as
// carrying no profile.
package session
