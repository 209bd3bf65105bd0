// Package common holds constants and sentinel errors shared by the client
// layers.
package common

// Outbound request headers.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
