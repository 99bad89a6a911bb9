// Package api is the authenticated request pipeline of the storefront
// client.
//
// # Overview
//
// The package provides:
//  1. Builder, which turns an endpoint path and an optional payload into a
//     Request carrying JSON headers and, for authenticated calls, the
//     stored bearer token.
//  2. Client, which executes one Request against the REST API and
//     classifies the outcome. It never retries and never touches the
//     session.
//  3. Coordinator, which owns token-expiry recovery: on a 401 for an
//     authenticated call it refreshes the access token once, retries the
//     call once, and on refresh failure clears the session and returns
//     ErrSessionExpired.
//
// # Error Handling
//
// Failures are *TransportError (no usable response), *HTTPError (non-2xx),
// ErrUnauthorized (401 on an authenticated call, absorbed by Coordinator)
// and ErrSessionExpired (terminal). Use errors.Is / errors.As.
package api
