package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newAuthRouter(issuer, audience string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret, issuer, audience))
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(200, gin.H{"user_id": userID})
	})
	return r
}

func doAuthed(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := newAuthRouter("", "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthed(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	r := newAuthRouter("", "")
	if w := doAuthed(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	r := newAuthRouter("", "")
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if w := doAuthed(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter("", "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if w := doAuthed(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthRejectsMissingSubject(t *testing.T) {
	r := newAuthRouter("", "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if w := doAuthed(r, token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthValidatesIssuerAndAudience(t *testing.T) {
	r := newAuthRouter("prepmate", "api")

	good := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"iss": "prepmate",
		"aud": "api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if w := doAuthed(r, good); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	badIss := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"iss": "someone-else",
		"aud": "api",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if w := doAuthed(r, badIss); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	badAud := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"iss": "prepmate",
		"aud": "web",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if w := doAuthed(r, badAud); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
