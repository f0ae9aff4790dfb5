package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "memberhub context key " + string(c)
}

// SessionIDKey is the key for the active session identifier in context.Context
const SessionIDKey = contextKey("sessionID")

// UserEmailKey is the key for the authenticated user's email in context.Context
const UserEmailKey = contextKey("userEmail")

// RequestIDKey is the key for the request identifier in context.Context
const RequestIDKey = contextKey("requestID")
