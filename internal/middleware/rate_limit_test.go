// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/time/rate"
)

type ThrottleTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *ThrottleTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	throttle := NewThrottle(rate.Every(time.Hour), 2)
	suite.router = gin.New()
	suite.router.Use(throttle.Middleware())
	suite.router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func (suite *ThrottleTestSuite) ping(remoteAddr string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ThrottleTestSuite) TestBurstExhaustionReturns429() {
	assert.Equal(suite.T(), http.StatusOK, suite.ping("10.0.0.1:1234").Code)
	assert.Equal(suite.T(), http.StatusOK, suite.ping("10.0.0.1:1234").Code)

	w := suite.ping("10.0.0.1:1234")
	assert.Equal(suite.T(), http.StatusTooManyRequests, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "RATE_LIMITED")
}

func (suite *ThrottleTestSuite) TestClientsGetIndependentBuckets() {
	suite.ping("10.0.0.1:1234")
	suite.ping("10.0.0.1:1234")
	assert.Equal(suite.T(), http.StatusTooManyRequests, suite.ping("10.0.0.1:1234").Code)

	assert.Equal(suite.T(), http.StatusOK, suite.ping("10.0.0.2:1234").Code)
}

func TestThrottleSuite(t *testing.T) {
	suite.Run(t, new(ThrottleTestSuite))
}
