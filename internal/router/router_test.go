// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/bazarcheck/bazarcheck-backend/internal/config"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository/memory"
	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type stubProvider struct{}

func (stubProvider) CreateIntent(amount int64, currency string, metadata map[string]string) (*services.PaymentIntentResult, error) {
	return &services.PaymentIntentResult{
		ID:           "pi_stub",
		ClientSecret: "pi_stub_secret",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

type RouterTestSuite struct {
	suite.Suite
	repos  *repository.Repositories
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.repos = memory.New()

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: 1},
		Payment:     config.PaymentConfig{Currency: "usd", MinimumChargeCents: 50},
	}
	suite.router = Build(suite.repos, stubProvider{}, cfg)

	admin := &models.User{Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin}
	vendor := &models.User{Email: "vendor@example.com", Name: "Vendor", Role: models.RoleVendor}
	buyer := &models.User{Email: "buyer@example.com", Name: "Buyer", Role: models.RoleUser}
	suite.Require().NoError(suite.repos.Users.Create(admin))
	suite.Require().NoError(suite.repos.Users.Create(vendor))
	suite.Require().NoError(suite.repos.Users.Create(buyer))
}

func (suite *RouterTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) token(email string) string {
	token, err := utils.GenerateJWT(email, "user", 1)
	suite.Require().NoError(err)
	return token
}

func (suite *RouterTestSuite) TestHealthCheck() {
	w := suite.do("GET", "/health", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestPublicCatalogNeedsNoToken() {
	w := suite.do("GET", "/approved-products", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestProtectedRouteWithoutToken() {
	w := suite.do("GET", "/get-cart", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestAdminRouteRejectsPlainUser() {
	w := suite.do("GET", "/users", suite.token("buyer@example.com"), nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestAdminRouteAdmitsAdmin() {
	w := suite.do("GET", "/users", suite.token("admin@example.com"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestVendorRouteAdmitsVendorAndAdmin() {
	body := map[string]interface{}{
		"item_name":      "Apples",
		"market_name":    "Central Market",
		"price_per_unit": 2.50,
	}

	w := suite.do("POST", "/add-products", suite.token("vendor@example.com"), body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.do("POST", "/add-products", suite.token("admin@example.com"), body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.do("POST", "/add-products", suite.token("buyer@example.com"), body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestEmailScopedRouteRejectsMismatch() {
	w := suite.do("GET", "/orders?email=someone-else@example.com", suite.token("buyer@example.com"), nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do("GET", "/orders?email=buyer@example.com", suite.token("buyer@example.com"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestLastLoginIsScopedToCaller() {
	w := suite.do("PATCH", "/update-last-login", suite.token("buyer@example.com"), map[string]interface{}{
		"email": "vendor@example.com",
		"name":  "Someone Else",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	// The body-supplied email is ignored; the vendor account is untouched.
	vendor, err := suite.repos.Users.GetByEmail("vendor@example.com")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Vendor", vendor.Name)
	assert.Nil(suite.T(), vendor.LastSignedIn)

	buyer, err := suite.repos.Users.GetByEmail("buyer@example.com")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Someone Else", buyer.Name)
	assert.NotNil(suite.T(), buyer.LastSignedIn)
}

func (suite *RouterTestSuite) TestVendorApplicationIsForPlainUsers() {
	body := map[string]interface{}{
		"applicant_name": "Buyer",
		"shop_name":      "Buyer Produce",
	}

	w := suite.do("POST", "/vendors/apply", suite.token("buyer@example.com"), body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.do("POST", "/vendors/apply", suite.token("vendor@example.com"), body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestReviewRoundTripThroughHTTP() {
	create := suite.do("POST", "/add-products", suite.token("vendor@example.com"), map[string]interface{}{
		"item_name":      "Pears",
		"market_name":    "South Market",
		"price_per_unit": 4.00,
	})
	suite.Require().Equal(http.StatusCreated, create.Code)

	var created struct {
		Data models.Product `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(create.Body.Bytes(), &created))
	id := created.Data.ID.String()

	// Pending listing is invisible to the public catalog and strangers.
	w := suite.do("GET", "/single-product/"+id, "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// Admin approves; the listing becomes public.
	w = suite.do("PATCH", "/approve-product/"+id, suite.token("admin@example.com"), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/single-product/"+id, "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestCheckoutFlowThroughHTTP() {
	create := suite.do("POST", "/add-products", suite.token("vendor@example.com"), map[string]interface{}{
		"item_name":      "Cheese",
		"market_name":    "West Market",
		"price_per_unit": 9.99,
	})
	suite.Require().Equal(http.StatusCreated, create.Code)

	var created struct {
		Data models.Product `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(create.Body.Bytes(), &created))
	id := created.Data.ID.String()

	w := suite.do("PATCH", "/approve-product/"+id, suite.token("admin@example.com"), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	buyer := suite.token("buyer@example.com")
	w = suite.do("POST", "/cart", buyer, map[string]interface{}{"product_id": id, "quantity": 2})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do("POST", "/create-payment-intent-cart", buyer, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var intent struct {
		Data services.PaymentIntentResult `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &intent))
	assert.Equal(suite.T(), int64(1998), intent.Data.Amount)

	w = suite.do("POST", "/save-payment", buyer, map[string]interface{}{
		"payment_intent_id": intent.Data.ID,
		"from_cart":         true,
		"items":             []map[string]interface{}{{"product_id": id, "quantity": 2}},
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	// The cart is now empty and the order shows up for the buyer.
	w = suite.do("GET", "/get-cart", buyer, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/orders", buyer, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
