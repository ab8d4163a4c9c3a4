package kernel

// AuthContext is the authenticated caller, injected by the session middleware.
type AuthContext struct {
	Email     Email     `json:"email"`
	AccountID AccountID `json:"accountId"`
	Role      Role      `json:"role"`
	SessionID string    `json:"session_id,omitempty"`
}

// IsValid reports whether the context carries an account binding.
func (ac *AuthContext) IsValid() bool {
	return ac != nil && !ac.Email.IsEmpty() && !ac.AccountID.IsEmpty()
}

// HasRole reports whether the caller holds role.
func (ac *AuthContext) HasRole(role Role) bool {
	return ac != nil && ac.Role == role
}

type ContextKey string

const (
	// AuthContextKey stores *AuthContext in fiber locals and context.Context
	AuthContextKey ContextKey = "auth_context"

	// RequestIDKey stores the request id string
	RequestIDKey ContextKey = "request_id"
)
