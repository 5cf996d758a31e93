package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ainstein-org/ainstein-backend/internal/apires"
	"github.com/ainstein-org/ainstein-backend/internal/logger"
	"github.com/ainstein-org/ainstein-backend/internal/requestdata"
	"github.com/ainstein-org/ainstein-backend/internal/services"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

// fakeAuthService only answers ParseToken; the middleware never touches
// the other operations.
type fakeAuthService struct {
	claims *services.JWTClaims
	err    error
}

func (f *fakeAuthService) ParseToken(tokenString string) (*services.JWTClaims, error) {
	return f.claims, f.err
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, name, email, password string) (*types.User, error) {
	return nil, nil
}
func (f *fakeAuthService) VerifyEmail(ctx context.Context, email, code string) error { return nil }
func (f *fakeAuthService) ResendVerificationCode(ctx context.Context, email string) error {
	return nil
}
func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return nil, nil
}
func (f *fakeAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*services.TokenPair, error) {
	return nil, nil
}
func (f *fakeAuthService) Logout(ctx context.Context, accessToken string) error { return nil }

func runRequireAuth(t *testing.T, svc services.AuthService, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	NewAuthMiddleware(logger.NewNop(), svc).RequireAuth()(c)
	return w, c
}

func TestRequireAuthRejectsWithEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		svc    services.AuthService
		header string
	}{
		{"missing header", &fakeAuthService{}, ""},
		{"unparseable token", &fakeAuthService{err: jwt.ErrTokenMalformed}, "Bearer not-a-token"},
		{"non-uuid subject", &fakeAuthService{claims: &services.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
		}}, "Bearer whatever"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, c := runRequireAuth(t, tc.svc, tc.header)
			if !c.IsAborted() {
				t.Fatalf("expected the chain to be aborted")
			}
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", w.Code)
			}
			var env apires.Envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("response body is not the standard envelope: %v", err)
			}
			if env.Success || env.Code != http.StatusUnauthorized {
				t.Fatalf("expected success=false code=401, got success=%v code=%d", env.Success, env.Code)
			}
			if env.Message != "Missing or invalid token" {
				t.Fatalf("unexpected message %q", env.Message)
			}
		})
	}
}

func TestRequireAuthAttachesRequestData(t *testing.T) {
	userID := uuid.New()
	svc := &fakeAuthService{claims: &services.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Email:            "budi@example.com",
	}}

	w, c := runRequireAuth(t, svc, "Bearer good-token")
	if c.IsAborted() {
		t.Fatalf("valid token must not abort, body: %s", w.Body.String())
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		t.Fatalf("expected request data on the context")
	}
	if rd.UserID != userID || rd.Email != "budi@example.com" || rd.TokenString != "good-token" {
		t.Fatalf("request data not populated: %+v", rd)
	}
}
