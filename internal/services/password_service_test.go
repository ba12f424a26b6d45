package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// PasswordServiceSuite defines the test suite for PasswordServiceInterface
type PasswordServiceSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

// SetupTest runs before each test in the suite
func (s *PasswordServiceSuite) SetupTest() {
	s.service = NewPasswordService()
}

// TestPasswordServiceSuite runs the test suite
func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceSuite))
}

func (s *PasswordServiceSuite) TestValidatePassword() {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", "Password1", nil},
		{"empty", "", ErrPasswordEmpty},
		{"too short", "Pass1", ErrPasswordTooShort},
		{"too long", strings.Repeat("a", 70) + "abc1", ErrPasswordTooLong},
		{"no letter", "12345678", ErrPasswordNoLetter},
		{"no number", "Passwords", ErrPasswordNoNumber},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.service.ValidatePassword(tt.password)
			if tt.wantErr == nil {
				s.NoError(err)
			} else {
				s.ErrorIs(err, tt.wantErr)
			}
		})
	}
}

func (s *PasswordServiceSuite) TestHashAndComparePassword() {
	hash, err := s.service.HashPassword("Password1")
	s.Require().NoError(err)
	s.NotEqual("Password1", hash)

	s.True(s.service.ComparePassword("Password1", hash))
	s.False(s.service.ComparePassword("Password2", hash))
}

func (s *PasswordServiceSuite) TestHashPassword_RejectsWeakPassword() {
	_, err := s.service.HashPassword("short1")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *PasswordServiceSuite) TestHashPassword_UniqueSalts() {
	first, err := s.service.HashPassword("Password1")
	s.Require().NoError(err)
	second, err := s.service.HashPassword("Password1")
	s.Require().NoError(err)

	s.NotEqual(first, second)
}
