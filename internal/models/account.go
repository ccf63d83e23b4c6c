// Package models defines the persisted record types: accounts, the
// session user, and tasks.
package models

// Account is a stored user record. The password is kept exactly as
// entered: this is a local single-machine application with no real
// security layer, and nothing outside the directory ever sees the field.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// User is an Account with the password stripped. Sessions and the UI only
// ever handle Users.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Redacted returns the account without its password field.
func (a Account) Redacted() User {
	return User{ID: a.ID, Email: a.Email, Name: a.Name}
}
