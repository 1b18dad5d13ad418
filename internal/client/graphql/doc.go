// Package graphql is the client's single gateway to the API.
//
// A Client sends operations as JSON over HTTP POST to one endpoint. Before
// each send the operation passes through a chain of Links, which is where the
// session token is attached (AuthLink). Results are written into a
// normalized Cache keyed by entity identity (__typename and _id), so
// overlapping selections made by different queries land on the same cached
// object. Documents must select __typename on every type meant to be shared.
//
// Cache invalidation is declarative: a mutation lists the queries to re-run
// once it succeeds (WithRefetch) and/or names the field of its result that
// holds the refreshed parent entity (WithReconcile). There are no other
// write paths into the cache.
//
// Errors are *NetworkError (transport failed, non-2xx, unreadable body) or
// *GraphQLError (the server answered with an errors array); match them with
// errors.Is against ErrNetwork and ErrGraphQL. Nothing is retried.
package graphql
