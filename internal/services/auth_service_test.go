// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/config"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository/memory"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	repos *repository.Repositories
	auth  *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.repos = memory.New()
	suite.auth = NewAuthService(suite.repos.Users, config.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: 1,
	})
}

func (suite *AuthServiceTestSuite) TestRegisterAssignsBaseRole() {
	user, err := suite.auth.Register(RegisterInput{
		Email: "new@example.com",
		Name:  "New User",
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleUser, user.Role)
	assert.False(suite.T(), user.HasPassword())
}

func (suite *AuthServiceTestSuite) TestDuplicateRegistrationIsConflict() {
	_, err := suite.auth.Register(RegisterInput{Email: "dup@example.com", Name: "First"})
	suite.Require().NoError(err)

	_, err = suite.auth.Register(RegisterInput{Email: "dup@example.com", Name: "Second"})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindConflict))
}

func (suite *AuthServiceTestSuite) TestTokenCarriesStoredRole() {
	user := &models.User{Email: "vendor@example.com", Name: "Vendor", Role: models.RoleVendor}
	suite.Require().NoError(suite.repos.Users.Create(user))

	token, err := suite.auth.IssueToken(TokenInput{Email: "vendor@example.com"})
	suite.Require().NoError(err)

	claims, err := utils.ValidateJWT(token)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "vendor@example.com", claims.Email)
	assert.Equal(suite.T(), "vendor", claims.Role)
}

func (suite *AuthServiceTestSuite) TestUnknownEmailGetsBaseRoleToken() {
	token, err := suite.auth.IssueToken(TokenInput{Email: "ghost@example.com"})
	suite.Require().NoError(err)

	claims, err := utils.ValidateJWT(token)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "user", claims.Role)
}

func (suite *AuthServiceTestSuite) TestLocalCredentialIsEnforced() {
	_, err := suite.auth.Register(RegisterInput{
		Email:    "secure@example.com",
		Name:     "Secure",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)

	_, err = suite.auth.IssueToken(TokenInput{Email: "secure@example.com", Password: "wrong"})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = suite.auth.IssueToken(TokenInput{Email: "secure@example.com", Password: "correct horse battery"})
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRecordLoginStampsTimestamp() {
	_, err := suite.auth.Register(RegisterInput{Email: "seen@example.com", Name: "Seen"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.auth.RecordLogin(LastLoginInput{Email: "seen@example.com"}))

	user, err := suite.repos.Users.GetByEmail("seen@example.com")
	suite.Require().NoError(err)
	assert.NotNil(suite.T(), user.LastSignedIn)
}

func (suite *AuthServiceTestSuite) TestRecordLoginForUnknownUserIsNotFound() {
	err := suite.auth.RecordLogin(LastLoginInput{Email: "nobody@example.com"})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
