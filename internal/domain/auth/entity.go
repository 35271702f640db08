package auth

// Credentials is the login form input.
type Credentials struct {
	Email    string
	Password string
}

// Token is the bearer token issued by the backend on login. The panel
// treats the access token as opaque; expiry is enforced backend-side.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
