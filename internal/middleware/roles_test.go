package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

type RoleMiddlewareTestSuite struct {
	suite.Suite
}

func (suite *RoleMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

// injectUser stores the user in the request context the way LoadUserMiddleware does.
func injectUser(user *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), currentUserKey, user))
		c.Next()
	}
}

func (suite *RoleMiddlewareTestSuite) serve(user *domain.User, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	chain := []gin.HandlerFunc{}
	if user != nil {
		chain = append(chain, injectUser(user))
	}
	chain = append(chain, handlers...)
	chain = append(chain, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/guarded", chain...)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w
}

func (suite *RoleMiddlewareTestSuite) TestRequireSetupComplete_BlocksUnfinishedUser() {
	trader := &domain.User{UserID: "bello", Role: domain.RoleTrader, SetupComplete: false}

	w := suite.serve(trader, RequireSetupComplete())

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RoleMiddlewareTestSuite) TestRequireSetupComplete_AllowsFinishedUser() {
	trader := &domain.User{UserID: "bello", Role: domain.RoleTrader, SetupComplete: true}

	w := suite.serve(trader, RequireSetupComplete())

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RoleMiddlewareTestSuite) TestRequireSetupComplete_AdminBypasses() {
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin, SetupComplete: false}

	w := suite.serve(admin, RequireSetupComplete())

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RoleMiddlewareTestSuite) TestRequireSetupComplete_RequiresUser() {
	w := suite.serve(nil, RequireSetupComplete())

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RoleMiddlewareTestSuite) TestRequireRoles_MatchingRole() {
	agent := &domain.User{UserID: "aisha", Role: domain.RoleAgent}

	w := suite.serve(agent, RequireRoles(domain.RoleAgent))

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RoleMiddlewareTestSuite) TestRequireRoles_WrongRole() {
	personal := &domain.User{UserID: "sani", Role: domain.RolePersonal}

	w := suite.serve(personal, RequireRoles(domain.RoleTrader))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RoleMiddlewareTestSuite) TestRequireRoles_NoArgsMeansAdminOnly() {
	trader := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}

	suite.Equal(http.StatusForbidden, suite.serve(trader, RequireRoles()).Code)
	suite.Equal(http.StatusOK, suite.serve(admin, RequireRoles()).Code)
}

// --- Run Suite ---
func TestRoleMiddleware(t *testing.T) {
	suite.Run(t, new(RoleMiddlewareTestSuite))
}
