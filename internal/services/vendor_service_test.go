// internal/services/vendor_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository/memory"
)

type VendorServiceTestSuite struct {
	suite.Suite
	repos   *repository.Repositories
	vendors *VendorService
}

func (suite *VendorServiceTestSuite) SetupTest() {
	suite.repos = memory.New()
	suite.vendors = NewVendorService(suite.repos.Applications, suite.repos.Users)

	user := &models.User{Email: "applicant@example.com", Name: "Applicant", Role: models.RoleUser}
	suite.Require().NoError(suite.repos.Users.Create(user))
}

func (suite *VendorServiceTestSuite) apply() *models.VendorApplication {
	app, err := suite.vendors.Apply(ApplyInput{
		ApplicantEmail: "applicant@example.com",
		ApplicantName:  "Applicant",
		ShopName:       "Fresh Goods",
		MarketName:     "Central Market",
	})
	suite.Require().NoError(err)
	return app
}

func (suite *VendorServiceTestSuite) TestOnePendingApplicationPerAccount() {
	suite.apply()

	_, err := suite.vendors.Apply(ApplyInput{
		ApplicantEmail: "applicant@example.com",
		ApplicantName:  "Applicant",
		ShopName:       "Second Shop",
	})
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindConflict))
}

func (suite *VendorServiceTestSuite) TestApprovalPromotesApplicant() {
	app := suite.apply()

	decided, err := suite.vendors.Decide(app.ID, true)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ApplicationStatusApproved, decided.VendorStatus)
	assert.NotNil(suite.T(), decided.DecidedAt)

	role, err := suite.repos.Users.RoleByEmail("applicant@example.com")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleVendor, role)
}

func (suite *VendorServiceTestSuite) TestRejectionLeavesRoleAlone() {
	app := suite.apply()

	decided, err := suite.vendors.Decide(app.ID, false)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ApplicationStatusRejected, decided.VendorStatus)

	role, err := suite.repos.Users.RoleByEmail("applicant@example.com")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleUser, role)
}

func (suite *VendorServiceTestSuite) TestDecisionFiresExactlyOnce() {
	app := suite.apply()

	_, err := suite.vendors.Decide(app.ID, true)
	suite.Require().NoError(err)

	// A second decision, even the opposite one, cannot rewrite history.
	_, err = suite.vendors.Decide(app.ID, false)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindConflict))

	stored, err := suite.repos.Applications.GetByID(app.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ApplicationStatusApproved, stored.VendorStatus)
}

func (suite *VendorServiceTestSuite) TestDecidingUnknownApplicationIsNotFound() {
	_, err := suite.vendors.Decide(uuid.New(), true)
	assert.True(suite.T(), apperr.IsKind(err, apperr.KindNotFound))
}

func (suite *VendorServiceTestSuite) TestRejectedApplicantMayReapply() {
	app := suite.apply()
	_, err := suite.vendors.Decide(app.ID, false)
	suite.Require().NoError(err)

	_, err = suite.vendors.Apply(ApplyInput{
		ApplicantEmail: "applicant@example.com",
		ApplicantName:  "Applicant",
		ShopName:       "Fresh Goods Again",
	})
	assert.NoError(suite.T(), err)
}

func TestVendorServiceSuite(t *testing.T) {
	suite.Run(t, new(VendorServiceTestSuite))
}
