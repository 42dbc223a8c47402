package models

// User is an account that can sign in to the catalog. Users are never
// updated or deleted once created.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt, never serialized
}
