// Package api is the catalogue of GraphQL operations the client sends, the
// models they decode into, and the cache contract of every mutation:
//
//   - updateProfile, addPost and removePost re-run the queries whose lists
//     they change (me, posts).
//   - addComment, removeComment, addLike and removeLike return the whole
//     parent post; it is reconciled into the cache as the new truth.
//   - removeApplication re-runs me.
package api
