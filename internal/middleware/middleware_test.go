package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS([]string{"http://localhost:3000"})(nextHandler)

	t.Run("Preflight request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/query", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		// Browsers send the requested headers lowercased and sorted.
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Equal(t, "authorization,content-type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.True(t, w.Code == http.StatusOK || w.Code == http.StatusNoContent)
	})

	t.Run("Preflight with disallowed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/query", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "content-type,x-forbidden")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func TestAuth(t *testing.T) {
	t.Run("Missing Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := auth.IdentityFrom(r.Context())
			assert.False(t, ok, "Context should not contain an identity")
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		w := httptest.NewRecorder()

		AuthMiddleware(testSecret)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		AuthMiddleware(testSecret)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		tokenString := signedToken(t, jwt.MapClaims{
			"customer_id": "cust-1",
			"name":        "Asha",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFrom(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "cust-1", id.CustomerID)
			assert.Equal(t, auth.RoleCustomer, id.Role)
			assert.Equal(t, "cust-1", logger.CustomerIDFrom(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(testSecret)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cookie Token", func(t *testing.T) {
		tokenString := signedToken(t, jwt.MapClaims{
			"customer_id": "cust-2",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: tokenString})
		w := httptest.NewRecorder()

		var got string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := auth.IdentityFrom(r.Context())
			got = id.CustomerID
		})

		AuthMiddleware(testSecret)(next).ServeHTTP(w, req)

		assert.Equal(t, "cust-2", got)
	})

	t.Run("Expired Token", func(t *testing.T) {
		tokenString := signedToken(t, jwt.MapClaims{
			"customer_id": "cust-1",
			"exp":         time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		AuthMiddleware(testSecret)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := auth.IdentityFrom(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(testSecret)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier blocks after burst", func(t *testing.T) {
		rl := NewRateLimiter("")
		handler := rl.Middleware(ok)

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			req.Header.Set("X-Action", "checkout")
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		for _, c := range codes[:burstStrict] {
			assert.Equal(t, http.StatusOK, c)
		}
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Callers are limited independently", func(t *testing.T) {
		rl := NewRateLimiter("")
		handler := rl.Middleware(ok)

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			req.Header.Set("X-Action", "checkout")
			req.RemoteAddr = "10.0.0.1:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("X-Action", "checkout")
		req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{CustomerID: "cust-9"}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Tier resolution", func(t *testing.T) {
		rl := NewRateLimiter("internal-key")

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("X-Service-Auth", "internal-key")
		_, _, tier := rl.resolveRateTier(req)
		assert.Equal(t, "internal", tier)

		req = httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("X-Client-Type", "frontend-heavy")
		_, _, tier = rl.resolveRateTier(req)
		assert.Equal(t, "frontend", tier)

		req = httptest.NewRequest(http.MethodPost, "/query", nil)
		_, _, tier = rl.resolveRateTier(req)
		assert.Equal(t, "general", tier)
	})

	t.Run("Cleanup drops idle visitors", func(t *testing.T) {
		rl := NewRateLimiter("")
		rl.getVisitor("ip:1", limitGeneral, burstGeneral)
		rl.visitors["ip:1"].lastSeen = time.Now().Add(-time.Hour)
		rl.getVisitor("ip:2", limitGeneral, burstGeneral)

		rl.Cleanup(visitorIdleTimeout)

		assert.Len(t, rl.visitors, 1)
		assert.Contains(t, rl.visitors, "ip:2")
	})

	t.Run("Run stops with context", func(t *testing.T) {
		rl := NewRateLimiter("")
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			rl.Run(ctx)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("limiter cleanup did not stop")
		}
	})
}
