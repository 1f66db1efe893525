package domain

import "strings"

// Credentials is the input of the login and registration forms.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// ValidateLogin requires an email and a password.
func (c Credentials) ValidateLogin() error {
	if blank(c.Email) || c.Password == "" {
		return ErrValidation
	}
	return nil
}

// ValidateRegister additionally requires a name.
func (c Credentials) ValidateRegister() error {
	if blank(c.Name) {
		return ErrValidation
	}
	return c.ValidateLogin()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
