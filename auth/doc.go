// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens and the session gate.

# Session Tokens

Tokens are random 24-byte secrets, URL-safe base64 encoded:

	token, err := auth.GenerateSessionToken()

Only HashToken(token), a SHA-256 hex digest, is stored.

# Gate

Gate resolves a request's token to the logged-in user:

	user, err := gate.ResolveCurrentUser(ctx, token) // nil user when logged out
	user, err := gate.RequireLogin(ctx, token)       // ErrNotAuthenticated when logged out

LoginOrRegister finds the user with the given name, creating one who joins
today if none exists, and opens a new session.
*/
package auth
