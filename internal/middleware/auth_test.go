package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitediary/internal/domain"
	"sitediary/internal/middleware"
	"sitediary/internal/service"
	"sitediary/mocks"
)

const cookieName = "sd_session"

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(authSvc service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(authSvc, cookieName))
	r.GET("/test", func(c *gin.Context) {
		id, err := middleware.GetIdentity(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "username": id.Username, "role": id.Role})
	})
	return r
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	userID := uuid.New()
	mockAuth.On("ValidateToken", "valid-token").
		Return(&service.Identity{UserID: userID, Username: "maria", Role: domain.RoleUser}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	protectedRouter(mockAuth).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp["user_id"])
	assert.Equal(t, "maria", resp["username"])
	assert.Equal(t, "user", resp["role"])
	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_CookieWinsOverHeader(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "cookie-token").
		Return(&service.Identity{Username: "maria", Role: domain.RoleUser}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	protectedRouter(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	protectedRouter(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuth.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "bad").Return(nil, domain.ErrUnauthorized)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "bad")
	protectedRouter(mockAuth).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuth.AssertExpectations(t)
}

func TestSessionToken_Cleaning(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc", "abc"},
		{"lowercase bearer", "bearer abc", "abc"},
		{"raw", "abc", "abc"},
		{"quoted", `"abc"`, "abc"},
		{"quoted with bearer", `"Bearer abc"`, "abc"},
		{"bearer with quoted token", `Bearer "abc"`, "abc"},
		{"single quotes", `'abc'`, "abc"},
		{"only quotes", `""`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, middleware.SessionToken(c, cookieName))
		})
	}
}

func TestSessionToken_QuotedCookie(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Request.Header.Set("Cookie", cookieName+`="tok"`)

	assert.Equal(t, "tok", middleware.SessionToken(c, cookieName))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		id   *service.Identity
		want int
	}{
		{"admin allowed", &service.Identity{Username: "a", Role: domain.RoleAdmin}, http.StatusOK},
		{"user rejected", &service.Identity{Username: "u", Role: domain.RoleUser}, http.StatusForbidden},
		{"no identity", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.id != nil {
					middleware.SetIdentity(c, tt.id)
				}
				c.Next()
			})
			r.DELETE("/x", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodDelete, "/x", http.NoBody)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
