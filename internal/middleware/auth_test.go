// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type fakeDirectory struct {
	roles map[string]models.Role
}

func (d *fakeDirectory) RoleByEmail(email string) (models.Role, error) {
	role, ok := d.roles[email]
	if !ok {
		return "", assert.AnError
	}
	return role, nil
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router    *gin.Engine
	directory *fakeDirectory
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.directory = &fakeDirectory{roles: map[string]models.Role{
		"admin@example.com":  models.RoleAdmin,
		"vendor@example.com": models.RoleVendor,
		"user@example.com":   models.RoleUser,
	}}

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

	suite.router = gin.New()
	suite.router.GET("/protected", AuthRequired(), ok)
	suite.router.GET("/self", AuthRequired(), RequireSelf(), ok)
	suite.router.GET("/admin", AuthRequired(), RequireRoles(suite.directory, models.RoleAdmin), ok)
	suite.router.GET("/vendor", AuthRequired(),
		RequireRoles(suite.directory, models.RoleVendor, models.RoleAdmin), ok)
}

func (suite *AuthMiddlewareTestSuite) get(path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) token(email string) string {
	token, err := utils.GenerateJWT(email, "user", 1)
	suite.Require().NoError(err)
	return token
}

func (suite *AuthMiddlewareTestSuite) TestMissingCredentialIsUnauthorized() {
	w := suite.get("/protected", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeaderIsUnauthorized() {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestInvalidTokenIsForbidden() {
	w := suite.get("/protected", "not-a-real-token")
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestValidTokenPasses() {
	w := suite.get("/protected", suite.token("user@example.com"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestEmailParameterMismatchIsForbidden() {
	w := suite.get("/self?email=other@example.com", suite.token("user@example.com"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestEmailParameterMatchPasses() {
	w := suite.get("/self?email=user@example.com", suite.token("user@example.com"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestUnresolvableIdentityIsUnauthorized() {
	w := suite.get("/admin", suite.token("ghost@example.com"))
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestWrongRoleIsForbidden() {
	w := suite.get("/admin", suite.token("user@example.com"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestStoredRoleDecidesNotTokenClaim() {
	// The token claims "user" but the directory says admin; the gate admits.
	w := suite.get("/admin", suite.token("admin@example.com"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestAdminPassesVendorGate() {
	w := suite.get("/vendor", suite.token("admin@example.com"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
