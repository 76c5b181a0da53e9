package request

// LoginRequest carries email/password credentials for sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
