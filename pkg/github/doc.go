// Package github wraps the issues REST endpoint of a single repository.
//
// Requests go through a go-gh REST client that sends the configured Accept
// header and a bearer token, or no credentials when no token is configured
// or found. Server errors and rate limiting are retried with
// exponential backoff; every other non-2xx answer is returned at once as a
// *errors.APIError so callers can branch on the status:
//
//	issue, err := client.GetIssue(ctx, 42)
//	if errors.IsNotFound(err) {
//	    ...
//	}
//
// PostPayload is the escape hatch for negative tests. It posts any value to
// any URL and always reports the status code the server answered with.
package github
