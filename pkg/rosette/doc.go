// Package rosette implements a client for the Rosette text analytics API.
//
// # Overview
//
// The client POSTs document content (or a content URI) to an analysis
// endpoint and requests the full Annotated Data Model representation by
// setting the "output=rosette" URL parameter. depviz uses the
// syntax/dependencies endpoint, whose ADM carries the token and
// dependency-edge layers consumed by the adm package.
//
// # Usage
//
//	client := rosette.NewClient(rosette.Config{Key: key, Cache: backend})
//	doc, err := client.FetchDocument(ctx, rosette.Request{
//	    Content: "This is a sentence.",
//	})
//
// # Caching
//
// Responses are cached by a hash of the full request so repeated
// invocations on the same text do not spend API credits. Set
// Request.Refresh to bypass the cache.
//
// # Errors
//
// Failures map to structured codes from the errors package: UNAUTHORIZED
// for rejected credentials, RATE_LIMITED for quota exhaustion,
// REMOTE_SERVICE_ERROR for other service failures, and NETWORK_ERROR for
// transport problems. No retries are performed; a failed fetch is
// terminal.
package rosette
