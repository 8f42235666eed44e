// internal/services/order_service_test.go
package services

import (
	"errors"
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

type fakeProvider struct {
	lastAmount   int64
	lastCurrency string
	calls        int
	fail         bool
}

func (p *fakeProvider) CreateIntent(amount int64, currency string, metadata map[string]string) (*PaymentIntentResult, error) {
	p.calls++
	p.lastAmount = amount
	p.lastCurrency = currency
	if p.fail {
		return nil, errors.New("provider unavailable")
	}
	return &PaymentIntentResult{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

type OrderServiceTestSuite struct {
	suite.Suite
	repos    *repository.Repositories
	provider *fakeProvider
	orders   *OrderService
	cart     *CartService

	productA *models.Product
	productB *models.Product
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.repos = memory.New()
	suite.provider = &fakeProvider{}
	cfg := config.PaymentConfig{Currency: "usd", MinimumChargeCents: 50}
	suite.orders = NewOrderService(suite.repos.Orders, suite.repos.Cart, suite.repos.Products, suite.provider, cfg)
	suite.cart = NewCartService(suite.repos.Cart, suite.repos.Products)

	suite.productA = &models.Product{
		VendorEmail:  "vendor@example.com",
		ItemName:     "Tomatoes",
		MarketName:   "Central Market",
		PricePerUnit: 10.00,
		Status:       models.ReviewStatusApproved,
	}
	suite.productB = &models.Product{
		VendorEmail:  "vendor@example.com",
		ItemName:     "Cucumbers",
		MarketName:   "Central Market",
		PricePerUnit: 5.50,
		Status:       models.ReviewStatusApproved,
	}
	suite.Require().NoError(suite.repos.Products.Create(suite.productA))
	suite.Require().NoError(suite.repos.Products.Create(suite.productB))
}

func (suite *OrderServiceTestSuite) fillCart() {
	_, err := suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.productA.ID, Quantity: 2})
	suite.Require().NoError(err)
	_, err = suite.cart.Add("buyer@example.com", AddToCartInput{ProductID: suite.productB.ID, Quantity: 1})
	suite.Require().NoError(err)
}

func (suite *OrderServiceTestSuite) TestCartIntentChargesMinorUnits() {
	suite.fillCart()

	intent, err := suite.orders.CreateIntentForCart("buyer@example.com")
	suite.Require().NoError(err)

	// 2 x $10.00 + 1 x $5.50 = 2550 cents
	assert.Equal(suite.T(), int64(2550), intent.Amount)
	assert.Equal(suite.T(), int64(2550), suite.provider.lastAmount)
	assert.Equal(suite.T(), "usd", suite.provider.lastCurrency)
}

func (suite *OrderServiceTestSuite) TestSingleIntentMultipliesQuantity() {
	intent, err := suite.orders.CreateIntentForProduct("buyer@example.com", SingleIntentInput{
		ProductID: suite.productB.ID,
		Quantity:  3,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1650), intent.Amount)
}

func (suite *OrderServiceTestSuite) TestIntentBelowMinimumIsRejected() {
	cheap := &models.Product{
		VendorEmail:  "vendor@example.com",
		ItemName:     "Single clove",
		PricePerUnit: 0.25,
		Status:       models.ReviewStatusApproved,
	}
	suite.Require().NoError(suite.repos.Products.Create(cheap))

	_, err := suite.orders.CreateIntentForProduct("buyer@example.com", SingleIntentInput{ProductID: cheap.ID})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))
	assert.Zero(suite.T(), suite.provider.calls)
}

func (suite *OrderServiceTestSuite) TestEmptyCartIntentIsRejected() {
	_, err := suite.orders.CreateIntentForCart("buyer@example.com")
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))
}

func (suite *OrderServiceTestSuite) TestVanishedProductFailsCartIntent() {
	suite.fillCart()
	suite.Require().NoError(suite.repos.Products.Delete(suite.productA.ID))

	_, err := suite.orders.CreateIntentForCart("buyer@example.com")
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))
}

func (suite *OrderServiceTestSuite) TestProviderFailureIsExternalAndNotRetried() {
	suite.provider.fail = true
	_, err := suite.orders.CreateIntentForProduct("buyer@example.com", SingleIntentInput{
		ProductID: suite.productA.ID,
	})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindExternal))
	assert.Equal(suite.T(), 1, suite.provider.calls)
}

func (suite *OrderServiceTestSuite) TestCreateOrderFreezesCart() {
	suite.fillCart()

	order, err := suite.orders.CreateOrderFromCart("buyer@example.com", "Buyer")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
	assert.InDelta(suite.T(), 25.50, order.TotalAmount, 0.001)
	assert.Len(suite.T(), order.Items, 2)
}

func (suite *OrderServiceTestSuite) TestCreateOrderFromEmptyCart() {
	_, err := suite.orders.CreateOrderFromCart("buyer@example.com", "Buyer")
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))
}

func (suite *OrderServiceTestSuite) TestSavePaymentRecordsPaidOrderAndClearsCart() {
	suite.fillCart()

	order, err := suite.orders.SavePayment("buyer@example.com", "Buyer", SavePaymentInput{
		PaymentIntentID: "pi_test",
		FromCart:        true,
		Items: []SavePaymentItem{
			{ProductID: suite.productA.ID, Quantity: 2},
			{ProductID: suite.productB.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.OrderStatusPaid, order.Status)
	assert.NotNil(suite.T(), order.PaidAt)
	assert.Equal(suite.T(), "pi_test", order.PaymentIntentID)
	assert.InDelta(suite.T(), 25.50, order.TotalAmount, 0.001)

	items, err := suite.cart.List("buyer@example.com")
	suite.Require().NoError(err)
	assert.Empty(suite.T(), items)
}

func (suite *OrderServiceTestSuite) TestSavePaymentRequiresItems() {
	_, err := suite.orders.SavePayment("buyer@example.com", "Buyer", SavePaymentInput{
		PaymentIntentID: "pi_test",
	})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindInvalidInput))
}

func (suite *OrderServiceTestSuite) TestVendorOrdersSeeOnlyOwnProducts() {
	other := &models.Product{
		VendorEmail:  "other@example.com",
		ItemName:     "Peppers",
		PricePerUnit: 3.00,
		Status:       models.ReviewStatusApproved,
	}
	suite.Require().NoError(suite.repos.Products.Create(other))

	_, err := suite.orders.SavePayment("buyer@example.com", "Buyer", SavePaymentInput{
		PaymentIntentID: "pi_test",
		Items: []SavePaymentItem{
			{ProductID: suite.productA.ID, Quantity: 1},
			{ProductID: other.ID, Quantity: 2},
		},
	})
	suite.Require().NoError(err)

	params := utils.PaginationParams{Page: 1, Limit: utils.DefaultOrderLimit}
	rows, total, err := suite.orders.VendorOrders("vendor@example.com", params)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(rows, 1)
	assert.Equal(suite.T(), suite.productA.ID, rows[0].ProductID)

	rows, total, err = suite.orders.VendorOrders("other@example.com", params)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(rows, 1)
	assert.Equal(suite.T(), other.ID, rows[0].ProductID)
}

func (suite *OrderServiceTestSuite) TestVendorWithNoProductsGetsEmptyView() {
	params := utils.PaginationParams{Page: 1, Limit: utils.DefaultOrderLimit}
	rows, total, err := suite.orders.VendorOrders("nobody@example.com", params)
	suite.Require().NoError(err)
	assert.Zero(suite.T(), total)
	assert.Empty(suite.T(), rows)
}

func (suite *OrderServiceTestSuite) TestAdminOrdersKeepDeletedProductLines() {
	_, err := suite.orders.SavePayment("buyer@example.com", "Buyer", SavePaymentInput{
		PaymentIntentID: "pi_test",
		Items:           []SavePaymentItem{{ProductID: suite.productA.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repos.Products.Delete(suite.productA.ID))

	params := utils.PaginationParams{Page: 1, Limit: utils.DefaultOrderLimit}
	lines, total, err := suite.orders.AdminOrders(params)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(lines, 1)
	assert.Equal(suite.T(), "Tomatoes", lines[0].ItemName)
	assert.Equal(suite.T(), "N/A", lines[0].MarketName)
}

func (suite *OrderServiceTestSuite) TestBuyerOrdersAreScoped() {
	_, err := suite.orders.SavePayment("buyer@example.com", "Buyer", SavePaymentInput{
		PaymentIntentID: "pi_test",
		Items:           []SavePaymentItem{{ProductID: suite.productA.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	params := utils.PaginationParams{Page: 1, Limit: utils.DefaultOrderLimit}
	orders, total, err := suite.orders.BuyerOrders("buyer@example.com", params)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Len(suite.T(), orders, 1)

	orders, total, err = suite.orders.BuyerOrders("someone-else@example.com", params)
	suite.Require().NoError(err)
	assert.Zero(suite.T(), total)
	assert.Empty(suite.T(), orders)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
