// Package common contains shared constants and sentinel errors used across
// ledgerkeeper components.
package common

// AccessTokenHeaderName is the HTTP header (and gRPC metadata key) that
// carries the access token on inbound requests.
const AccessTokenHeaderName = "authorization"

// BearerPrefix is the optional scheme prefix accepted in front of the token.
const BearerPrefix = "Bearer "
