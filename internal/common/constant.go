// Package common contains shared constants and sentinel errors used across
// gophtodo components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the token in AuthorizationHeaderName.
const BearerScheme = "Bearer"
