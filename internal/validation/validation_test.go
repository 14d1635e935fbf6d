package validation_test

import (
	"testing"

	"github.com/mnazarko/movie-store/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{name: "plain address", email: "user@example.com"},
		{name: "subdomain", email: "user@mail.example.co.uk"},
		{name: "plus tag", email: "user+tag@example.com"},
		{name: "dots and dashes", email: "first.last-x@my-host.io"},
		{name: "missing at sign", email: "userexample.com", wantErr: validation.ErrInvalidEmail},
		{name: "missing domain", email: "user@", wantErr: validation.ErrInvalidEmail},
		{name: "missing tld", email: "user@example", wantErr: validation.ErrInvalidEmail},
		{name: "empty", email: "", wantErr: validation.ErrInvalidEmail},
		{name: "spaces", email: "user name@example.com", wantErr: validation.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateEmail(tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "meets all rules", password: "Abcdef1!"},
		{name: "all special characters accepted", password: "Abcdef1@$!%*?&#"},
		{name: "too short", password: "Ab1!xyz", wantErr: validation.ErrPasswordTooShort},
		{name: "no uppercase", password: "abcdef1!", wantErr: validation.ErrPasswordNoUpper},
		{name: "no lowercase", password: "ABCDEF1!", wantErr: validation.ErrPasswordNoLower},
		{name: "no digit", password: "Abcdefg!", wantErr: validation.ErrPasswordNoDigit},
		{name: "no special", password: "Abcdefg1", wantErr: validation.ErrPasswordNoSpecial},
		{name: "empty", password: "", wantErr: validation.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidatePasswordStrength(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
