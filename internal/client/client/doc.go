// Package client is a typed HTTP client for the messagely API.
//
// Every call takes a context and, where the route is protected, the bearer
// token returned by Login or Register. Non-2xx responses are decoded from the
// server's {"error":{...}} envelope and mapped onto the sentinel errors in
// internal/common, so callers can use errors.Is. Transport failures wrap
// ErrUnavailable.
package client
