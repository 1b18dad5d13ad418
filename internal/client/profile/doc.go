// Package profile keeps a locally edited draft of the signed-in user's
// profile in step with the server copy.
//
// A Synchronizer seeds the draft from the first successful fetch, but only
// into fields the user has not touched yet, and submits it through
// updateProfile. Application data is part of a submission only when all of
// its fields are filled in.
package profile
