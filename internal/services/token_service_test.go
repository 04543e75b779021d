package services

import (
	"crypto/rsa"
	"testing"
	"time"

	"conta-bancaria/internal/config"
	"conta-bancaria/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	privateKey     *rsa.PrivateKey
	publicKey      *rsa.PublicKey
	service        TokenServiceInterface
	issuer         string
	accessDuration time.Duration
}

// SetupTest runs before each test
func (s *TokenServiceTestSuite) SetupTest() {
	var err error
	s.privateKey, s.publicKey, err = config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.issuer = "conta-bancaria-test"
	s.accessDuration = time.Hour

	s.service = NewTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              s.issuer,
		AccessTokenDuration: s.accessDuration,
	})
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) testUser() *models.User {
	return &models.User{
		ID:   uuid.New(),
		CPF:  "52998224725",
		Role: models.RoleCustomer,
	}
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.testUser())
	s.NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))
	s.True(expiresAt.Before(time.Now().Add(2 * time.Hour)))
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	_, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Success() {
	user := s.testUser()
	token, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal(user.CPF, claims.CPF)
	s.Equal(models.RoleCustomer, claims.Role)
	s.Equal(s.issuer, claims.Issuer)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Empty() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Garbage() {
	_, err := s.service.ValidateAccessToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	expired := NewTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              s.issuer,
		AccessTokenDuration: -time.Minute,
	})

	token, _, err := expired.GenerateAccessToken(s.testUser())
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongIssuer() {
	other := NewTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              "someone-else",
		AccessTokenDuration: s.accessDuration,
	})

	token, _, err := other.GenerateAccessToken(s.testUser())
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongKey() {
	otherPrivate, _, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	other := NewTokenService(&config.JWTConfig{
		PrivateKey:          otherPrivate,
		PublicKey:           &otherPrivate.PublicKey,
		Issuer:              s.issuer,
		AccessTokenDuration: s.accessDuration,
	})

	token, _, err := other.GenerateAccessToken(s.testUser())
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	token, err := s.service.ExtractTokenFromHeader("Bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)

	token, err = s.service.ExtractTokenFromHeader("bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader_Invalid() {
	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer "} {
		_, err := s.service.ExtractTokenFromHeader(header)
		s.ErrorIs(err, ErrInvalidAuthHeader)
	}
}
