package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/guarded", RequireRole(roles...), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func doRequest(router *gin.Engine, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if role != "" {
		req.Header.Set(HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/guarded", RequireAuthenticated(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	require.Equal(t, http.StatusNoContent, doRequest(router, RoleSeller).Code)
	require.Equal(t, http.StatusNoContent, doRequest(router, "viewer").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
}

func TestRequireRole(t *testing.T) {
	router := setupRouter(RoleAdmin, RoleOperator)

	require.Equal(t, http.StatusNoContent, doRequest(router, RoleAdmin).Code)
	require.Equal(t, http.StatusNoContent, doRequest(router, RoleOperator).Code)
	require.Equal(t, http.StatusForbidden, doRequest(router, RoleSeller).Code)
	require.Equal(t, http.StatusForbidden, doRequest(router, "ghost").Code)
	require.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
}
