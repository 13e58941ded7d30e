package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "visapath/pkg/domain-errors"
)

type JWTSuite struct {
	suite.Suite
	service *Service
}

func (s *JWTSuite) SetupTest() {
	s.service = NewService("test-key", "visapath", "visapath-admin")
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTSuite))
}

func (s *JWTSuite) TestValidateToken() {
	s.Run("round-trips issued tokens", func() {
		token, err := s.service.IssueToken("admin@example.com", RoleAdmin, time.Minute)
		s.Require().NoError(err)

		claims, err := s.service.ValidateToken(token)
		s.Require().NoError(err)
		s.Equal("admin@example.com", claims.Subject)
		s.Equal(RoleAdmin, claims.Role)
	})

	s.Run("rejects expired tokens", func() {
		token, err := s.service.IssueToken("admin@example.com", RoleAdmin, -time.Minute)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects a different signing key", func() {
		other := NewService("other-key", "visapath", "visapath-admin")
		token, err := other.IssueToken("admin@example.com", RoleAdmin, time.Minute)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects a wrong issuer", func() {
		other := NewService("test-key", "someone-else", "visapath-admin")
		token, err := other.IssueToken("admin@example.com", RoleAdmin, time.Minute)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.Require().Error(err)
	})

	s.Run("rejects a wrong audience", func() {
		other := NewService("test-key", "visapath", "some-other-service")
		token, err := other.IssueToken("admin@example.com", RoleAdmin, time.Minute)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.Require().Error(err)
	})

	s.Run("rejects garbage", func() {
		_, err := s.service.ValidateToken("not-a-token")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects a token without a subject", func() {
		token, err := s.service.IssueToken("", RoleAdmin, time.Minute)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.Require().Error(err)
	})
}
