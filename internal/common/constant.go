// Package common contains shared constants and sentinel errors used across
// indexkeeper components.
package common

// AuthHeaderName is the HTTP header used to carry the bearer access token
// on inbound API requests.
const AuthHeaderName = "Authorization"

// AuthSchemePrefix is the expected prefix of the Authorization header value.
const AuthSchemePrefix = "Bearer "
