package domain

// User represents an editor account. No authentication logic uses it yet.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// UserInput is the insert shape for a user.
type UserInput struct {
	Username string
	Password string
}
