// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository/memory"
)

type CartServiceTestSuite struct {
	suite.Suite
	repos   *repository.Repositories
	cart    *CartService
	product *models.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.repos = memory.New()
	suite.cart = NewCartService(suite.repos.Cart, suite.repos.Products)

	suite.product = &models.Product{
		VendorEmail:  "vendor@example.com",
		ItemName:     "Olive oil",
		PricePerUnit: 12.75,
		Images:       []string{"https://cdn.example.com/oil.jpg"},
		Status:       models.ReviewStatusApproved,
	}
	suite.Require().NoError(suite.repos.Products.Create(suite.product))
}

func (suite *CartServiceTestSuite) TestAddSnapshotsListing() {
	item, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.product.ID})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "Olive oil", item.ItemName)
	assert.Equal(suite.T(), 12.75, item.PricePerUnit)
	assert.Equal(suite.T(), "https://cdn.example.com/oil.jpg", item.Image)
	assert.Equal(suite.T(), 1, item.Quantity)
}

func (suite *CartServiceTestSuite) TestRepeatedAddAccumulatesQuantity() {
	first, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.product.ID, Quantity: 2})
	suite.Require().NoError(err)

	second, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.product.ID, Quantity: 3})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), first.ID, second.ID)
	assert.Equal(suite.T(), 5, second.Quantity)

	items, err := suite.cart.List("buyer@example.com")
	suite.Require().NoError(err)
	assert.Len(suite.T(), items, 1)
}

func (suite *CartServiceTestSuite) TestUnapprovedProductCannotBeCarted() {
	pending := &models.Product{
		VendorEmail:  "vendor@example.com",
		ItemName:     "Unreviewed",
		PricePerUnit: 4.00,
		Status:       models.ReviewStatusPending,
	}
	suite.Require().NoError(suite.repos.Products.Create(pending))

	_, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: pending.ID})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))
}

func (suite *CartServiceTestSuite) TestQuantityFloorHolds() {
	item, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.product.ID, Quantity: 2})
	suite.Require().NoError(err)

	updated, err := suite.cart.AdjustQuantity(item.ID, "buyer@example.com", -1)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, updated.Quantity)

	_, err = suite.cart.AdjustQuantity(item.ID, "buyer@example.com", -1)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))

	items, err := suite.cart.List("buyer@example.com")
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	assert.Equal(suite.T(), 1, items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAdjustMissingRowIsNotFound() {
	item, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.product.ID})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.cart.Remove(item.ID, "buyer@example.com"))

	_, err = suite.cart.AdjustQuantity(item.ID, "buyer@example.com", 1)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))
}

func (suite *CartServiceTestSuite) TestCartIsScopedPerBuyer() {
	item, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.product.ID})
	suite.Require().NoError(err)

	// Another buyer cannot touch the row.
	_, err = suite.cart.AdjustQuantity(item.ID, "other@example.com", 1)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))

	err = suite.cart.Remove(item.ID, "other@example.com")
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
