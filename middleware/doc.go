// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

	handler := middleware.CORS(middleware.WithMetrics(m, middleware.WithLogging(mux)))

WithLogging logs each request's start and completion (status, duration_ms).
WithMetrics records the request histogram by route pattern and tracks
in-flight requests.

# CORS Middleware

Allows methods GET, POST, PUT, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Session-Token.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Work not found")
	middleware.ValidationErrorResponse(w, "A problem occurred: Could not create work", errs)

# Sessions

SessionToken reads the session_token cookie, falling back to the
X-Session-Token header. SetSessionCookie and ClearSessionCookie manage the
HttpOnly cookie.
*/
package middleware
