// Package api is a typed HTTP client for the ledger server.
//
// A Client keeps the access token returned by Login and sends it in the
// Authorization header of every ledger call. Transport failures are reported
// as ErrUnavailable; 401 and 404 responses map to ErrUnauthorized and
// common.ErrorNotFound so callers can use errors.Is.
package api
