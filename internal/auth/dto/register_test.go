package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdb-123/module13-is601/internal/auth/dto"
)

func validRegisterInput() dto.RegisterInput {
	return dto.RegisterInput{
		Email:     "john.doe@example.com",
		Username:  "johndoe",
		FirstName: "John",
		LastName:  "Doe",
		Password:  "SecurePass123",
	}
}

func TestRegisterInput_Validate_Success(t *testing.T) {
	assert.Nil(t, validRegisterInput().Validate())

	withConfirm := validRegisterInput()
	withConfirm.ConfirmPassword = withConfirm.Password
	assert.Nil(t, withConfirm.Validate())
}

func TestRegisterInput_Validate_Fields(t *testing.T) {
	longName := make([]byte, 51)
	for i := range longName {
		longName[i] = 'x'
	}

	tests := []struct {
		name   string
		mutate func(*dto.RegisterInput)
		field  string
	}{
		{"empty email", func(in *dto.RegisterInput) { in.Email = "" }, "email"},
		{"email without at", func(in *dto.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"email without domain dot", func(in *dto.RegisterInput) { in.Email = "a@b" }, "email"},
		{"email with display name", func(in *dto.RegisterInput) { in.Email = "John <john@example.com>" }, "email"},
		{"username too short", func(in *dto.RegisterInput) { in.Username = "ab" }, "username"},
		{"username too long", func(in *dto.RegisterInput) { in.Username = string(longName) }, "username"},
		{"empty first name", func(in *dto.RegisterInput) { in.FirstName = "" }, "first_name"},
		{"first name too long", func(in *dto.RegisterInput) { in.FirstName = string(longName) }, "first_name"},
		{"empty last name", func(in *dto.RegisterInput) { in.LastName = "" }, "last_name"},
		{"password too short", func(in *dto.RegisterInput) { in.Password = "Ab1" }, "password"},
		{"password without uppercase", func(in *dto.RegisterInput) { in.Password = "securepass123" }, "password"},
		{"password without lowercase", func(in *dto.RegisterInput) { in.Password = "SECUREPASS123" }, "password"},
		{"password without digit", func(in *dto.RegisterInput) { in.Password = "SecurePassword" }, "password"},
		{"confirmation mismatch", func(in *dto.RegisterInput) { in.ConfirmPassword = "Different123" }, "confirm_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegisterInput()
			tt.mutate(&input)

			verr := input.Validate()
			require.NotNil(t, verr)

			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestLoginInput_Validate(t *testing.T) {
	assert.Nil(t, dto.LoginInput{Identifier: "johndoe", Password: "whatever"}.Validate())

	verr := dto.LoginInput{}.Validate()
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 2)

	verr = dto.LoginInput{Identifier: "johndoe"}.Validate()
	require.NotNil(t, verr)
	assert.Equal(t, "password", verr.Fields[0].Field)
}
