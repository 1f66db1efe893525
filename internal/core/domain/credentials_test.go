package domain

import (
	"errors"
	"testing"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name         string
		creds        Credentials
		wantLogin    bool
		wantRegister bool
	}{
		{"complete", Credentials{Name: "A", Email: "a@x.io", Password: "pw"}, true, true},
		{"no name", Credentials{Email: "a@x.io", Password: "pw"}, true, false},
		{"blank name", Credentials{Name: "  ", Email: "a@x.io", Password: "pw"}, true, false},
		{"no email", Credentials{Name: "A", Password: "pw"}, false, false},
		{"no password", Credentials{Name: "A", Email: "a@x.io"}, false, false},
		{"empty", Credentials{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.ValidateLogin()
			if (err == nil) != tt.wantLogin {
				t.Errorf("ValidateLogin() = %v, want ok=%v", err, tt.wantLogin)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("ValidateLogin() = %v, want ErrValidation", err)
			}

			err = tt.creds.ValidateRegister()
			if (err == nil) != tt.wantRegister {
				t.Errorf("ValidateRegister() = %v, want ok=%v", err, tt.wantRegister)
			}
		})
	}
}
