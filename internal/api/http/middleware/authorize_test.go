package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hanulsoft/board-server/internal/api/http/middleware"
	servermocks "github.com/hanulsoft/board-server/internal/mocks"
	"github.com/hanulsoft/board-server/internal/model"
	"github.com/hanulsoft/board-server/internal/testutil"
)

func authorizeProbe(users model.UserStore, principal *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/probe",
		func(c *gin.Context) {
			if principal != nil {
				c.Set("principal", *principal)
			}
		},
		middleware.NewAuthorize(users, testutil.MakeNoopLogger()).RequireRole(model.RoleAdmin),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

	return engine
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	users := servermocks.NewUserStore(t)
	engine := authorizeProbe(users, nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_UserRejected(t *testing.T) {
	users := servermocks.NewUserStore(t)
	users.On("GetRole", mock.Anything, int64(5)).Return(model.RoleUser, nil)
	engine := authorizeProbe(users, &model.User{ID: 5, Role: model.RoleUser})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin permission required")
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	users := servermocks.NewUserStore(t)
	users.On("GetRole", mock.Anything, int64(7)).Return(model.RoleAdmin, nil)
	engine := authorizeProbe(users, &model.User{ID: 7, Role: model.RoleAdmin})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// A demotion lands immediately because the role is re-read on every
// request, even though the principal row still says admin.
func TestRequireRole_StaleAdminDemoted(t *testing.T) {
	users := servermocks.NewUserStore(t)
	users.On("GetRole", mock.Anything, int64(9)).Return(model.RoleUser, nil)
	engine := authorizeProbe(users, &model.User{ID: 9, Role: model.RoleAdmin})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_PrincipalGone(t *testing.T) {
	users := servermocks.NewUserStore(t)
	users.On("GetRole", mock.Anything, int64(5)).Return(model.Role(""), model.ErrNotFound)
	engine := authorizeProbe(users, &model.User{ID: 5, Role: model.RoleAdmin})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
