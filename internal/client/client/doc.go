// Package client is the REST side of the backend contract.
//
// The Client interface lists every call the services make. HTTPClient
// implements it over net/http: it keeps the access/refresh token pair in
// process memory, attaches "Authorization: Bearer <access>" and an
// X-Request-ID to each request, and refreshes the access token either
// before a call (when the JWT exp claim has passed) or after a 401, retrying
// the call once.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which unwraps to ErrUnauthorized,
// ErrNotFound, ErrBadRequest or ErrUnavailable by status code. Transport
// failures wrap ErrUnavailable. Match with errors.Is.
package client
