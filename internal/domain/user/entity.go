package user

// User is the administrator account as the backend reports it.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// UpdateRequest carries an account update; empty fields are left untouched
// by the backend.
type UpdateRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}
