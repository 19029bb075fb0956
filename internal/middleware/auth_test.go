package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"role":  role,
		"email": "user@example.com",
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func guardedRouter(guard gin.HandlerFunc) (*gin.Engine, *Principal) {
	gin.SetMode(gin.TestMode)
	var seen Principal
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		seen = principal
		c.JSON(http.StatusOK, gin.H{"id": principal.ID.Hex()})
	})
	return r, &seen
}

func requestWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuardMissingToken(t *testing.T) {
	r, _ := guardedRouter(AuthGuard(testSecret))
	if w := requestWithToken(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	r, _ := guardedRouter(AuthGuard(testSecret))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
}

func TestAuthGuardWrongSecret(t *testing.T) {
	r, _ := guardedRouter(AuthGuard(testSecret))
	token := signToken(t, "other-secret", primitive.NewObjectID().Hex(), models.RoleUser, time.Now().Add(time.Hour))
	if w := requestWithToken(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", w.Code)
	}
}

func TestAuthGuardExpiredToken(t *testing.T) {
	r, _ := guardedRouter(AuthGuard(testSecret))
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), models.RoleUser, time.Now().Add(-time.Hour))
	if w := requestWithToken(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthGuardRoleMismatch(t *testing.T) {
	r, _ := guardedRouter(AdminAuth(testSecret))
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), models.RoleUser, time.Now().Add(time.Hour))
	if w := requestWithToken(r, token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin role, got %d", w.Code)
	}
}

func TestAuthGuardInjectsPrincipal(t *testing.T) {
	r, seen := guardedRouter(UserAuth(testSecret))
	userID := primitive.NewObjectID()
	token := signToken(t, testSecret, userID.Hex(), models.RoleUser, time.Now().Add(time.Hour))

	w := requestWithToken(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if seen.ID != userID {
		t.Fatalf("expected principal id %s, got %s", userID.Hex(), seen.ID.Hex())
	}
	if seen.Role != models.RoleUser || seen.Email != "user@example.com" {
		t.Fatalf("unexpected principal: %+v", seen)
	}
}

func TestUserAuthAdmitsAdmins(t *testing.T) {
	r, _ := guardedRouter(UserAuth(testSecret))
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), models.RoleAdmin, time.Now().Add(time.Hour))
	if w := requestWithToken(r, token); w.Code != http.StatusOK {
		t.Fatalf("expected admins to pass the user guard, got %d", w.Code)
	}
}

func TestAuthGuardRequiresSubjectID(t *testing.T) {
	r, _ := guardedRouter(AuthGuard(testSecret))
	token := signToken(t, testSecret, "not-an-object-id", models.RoleUser, time.Now().Add(time.Hour))
	if w := requestWithToken(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid subject, got %d", w.Code)
	}
}
