package domain

// Credentials is the transient login request payload. It is created per
// submit attempt and discarded once the call resolves.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the login response. Token is opaque to the client; its only
// observable property is presence. UserID identifies the authenticated user
// for later product ownership.
type AuthResult struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
	UserID  int    `json:"user_id,omitempty"`
}
