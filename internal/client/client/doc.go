// Package client talks to the snakeboard server.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, SubmitScore, Leaderboard, Logout and Ping.
//  2. A concrete HTTP+JSON implementation (see HTTPClient). It keeps the
//     session cookie in a cookie jar and also sends the token returned by
//     Login as a bearer header. Failed responses become *APIError values
//     that unwrap to the sentinel errors of internal/common.
//  3. A websocket Subscriber that delivers realtime events (scoreUpdate)
//     and reconnects after the connection drops.
//
// # Error Handling
//
// Match errors with errors.Is against common.ErrUnavailable (transport
// failures), common.ErrorUnauthorized, common.ErrAlreadyExists,
// common.ErrorValidation, common.ErrorNotFound and common.ErrorInternal.
//
// All operations accept context.Context and honor cancellation.
package client
