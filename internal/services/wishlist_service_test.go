// internal/services/wishlist_service_test.go
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

type WishlistServiceTestSuite struct {
	suite.Suite
	repos    *repository.Repositories
	wishlist *WishlistService
	product  *models.Product
}

func (suite *WishlistServiceTestSuite) SetupTest() {
	suite.repos = memory.New()
	suite.wishlist = NewWishlistService(suite.repos.Wishlist, suite.repos.Products)

	suite.product = &models.Product{
		VendorEmail:  "vendor@example.com",
		ItemName:     "Honey",
		PricePerUnit: 8.00,
		Status:       models.ReviewStatusApproved,
	}
	suite.Require().NoError(suite.repos.Products.Create(suite.product))
}

func (suite *WishlistServiceTestSuite) TestSecondAddIsConflict() {
	_, err := suite.wishlist.Add("user@example.com", suite.product.ID)
	suite.Require().NoError(err)

	_, err = suite.wishlist.Add("user@example.com", suite.product.ID)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindConflict))

	entries, err := suite.wishlist.List("user@example.com")
	suite.Require().NoError(err)
	assert.Len(suite.T(), entries, 1)
}

func (suite *WishlistServiceTestSuite) TestDifferentOwnersShareAProduct() {
	_, err := suite.wishlist.Add("user@example.com", suite.product.ID)
	suite.Require().NoError(err)
	_, err = suite.wishlist.Add("other@example.com", suite.product.ID)
	suite.Require().NoError(err)
}

func (suite *WishlistServiceTestSuite) TestListResolvesProducts() {
	_, err := suite.wishlist.Add("user@example.com", suite.product.ID)
	suite.Require().NoError(err)

	entries, err := suite.wishlist.List("user@example.com")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Require().NotNil(entries[0].Product)
	assert.Equal(suite.T(), "Honey", entries[0].Product.ItemName)
}

func (suite *WishlistServiceTestSuite) TestRemoveIsScopedToOwner() {
	item, err := suite.wishlist.Add("user@example.com", suite.product.ID)
	suite.Require().NoError(err)

	err = suite.wishlist.Remove(item.ID, "other@example.com")
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))

	suite.Require().NoError(suite.wishlist.Remove(item.ID, "user@example.com"))
}

func (suite *WishlistServiceTestSuite) TestUnknownProductIsNotFound() {
	_, err := suite.wishlist.Add("user@example.com", suite.product.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repos.Products.Delete(suite.product.ID))
	other := &models.Product{VendorEmail: "v@example.com", ItemName: "Gone", PricePerUnit: 1, Status: models.ReviewStatusApproved}
	suite.Require().NoError(suite.repos.Products.Create(other))
	suite.Require().NoError(suite.repos.Products.Delete(other.ID))

	_, err = suite.wishlist.Add("user@example.com", other.ID)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))
}

func TestWishlistServiceSuite(t *testing.T) {
	suite.Run(t, new(WishlistServiceTestSuite))
}
