package services

import (
	"context"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/ainstein-org/ainstein-backend/internal/repos"
	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

type fakeEmailService struct {
	sentCodes []string
	sentTo    []string
}

func (f *fakeEmailService) SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string) error {
	f.sentTo = append(f.sentTo, toEmail)
	return nil
}

func (f *fakeEmailService) SendVerificationCode(ctx context.Context, toEmail string, toName string, code string) error {
	f.sentTo = append(f.sentTo, toEmail)
	f.sentCodes = append(f.sentCodes, code)
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeEmailService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	email := &fakeEmailService{}
	svc := NewAuthService(
		db, log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		repos.NewOneTimeCodeRepo(db, log),
		email,
		"test-secret",
	)
	return svc, email, db
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	svc, email, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Budi Santoso", " Budi@Example.COM ", "rahasia123")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "budi@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.EmailVerified {
		t.Fatalf("new accounts must start unverified")
	}
	if len(email.sentCodes) != 1 {
		t.Fatalf("registration should send one verification code, sent %d", len(email.sentCodes))
	}

	// Login before verification is refused.
	if _, err := svc.Login(ctx, "budi@example.com", "rahasia123"); err == nil {
		t.Fatalf("login must fail before email verification")
	}

	wrongCode := "000000"
	if wrongCode == email.sentCodes[0] {
		wrongCode = "000001"
	}
	if err := svc.VerifyEmail(ctx, "budi@example.com", wrongCode); err == nil {
		t.Fatalf("wrong code must not verify")
	}
	if err := svc.VerifyEmail(ctx, "budi@example.com", email.sentCodes[0]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	pair, err := svc.Login(ctx, "budi@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("login must issue both tokens")
	}

	claims, err := svc.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != user.ID.String() {
		t.Fatalf("token subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Email != "budi@example.com" {
		t.Fatalf("token email = %q", claims.Email)
	}

	if _, err := svc.Login(ctx, "budi@example.com", "salah"); err == nil {
		t.Fatalf("wrong password must not log in")
	}
}

func TestRegisterWithoutEmailService(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewAuthService(
		db, log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		repos.NewOneTimeCodeRepo(db, log),
		nil,
		"test-secret",
	)
	ctx := context.Background()

	// Startup treats the mailer as optional; registration still commits.
	user, err := svc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("RegisterUser without email service: %v", err)
	}
	var codes int64
	if err := db.Model(&types.OneTimeCode{}).Where("user_id = ?", user.ID).Count(&codes).Error; err != nil {
		t.Fatalf("count codes: %v", err)
	}
	if codes != 1 {
		t.Fatalf("code rows = %d, want 1", codes)
	}

	// Resending exists solely to mail a code, so here it must error out.
	err = svc.ResendVerificationCode(ctx, "budi@example.com")
	assertCode(t, err, http.StatusInternalServerError)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia123"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	_, err := svc.RegisterUser(ctx, "Budi Kedua", "budi@example.com", "rahasia456")
	assertCode(t, err, http.StatusBadRequest)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, email, db := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if err := svc.VerifyEmail(ctx, "budi@example.com", email.sentCodes[0]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	pair, err := svc.Login(ctx, "budi@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh must rotate the refresh token")
	}
	// Even back-to-back within one second the minted access token differs.
	if rotated.AccessToken == pair.AccessToken {
		t.Fatalf("refresh must mint a distinct access token")
	}

	// The old pair is dead after rotation.
	if _, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken); err == nil {
		t.Fatalf("old refresh token must be unusable after rotation")
	}

	var n int64
	if err := db.Model(&types.UserToken{}).Where("user_id = ?", user.ID).Count(&n).Error; err != nil {
		t.Fatalf("count tokens: %v", err)
	}
	if n != 1 {
		t.Fatalf("token rows = %d, want 1 after rotation", n)
	}
}

func TestLogoutDeletesToken(t *testing.T) {
	svc, email, db := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia123"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if err := svc.VerifyEmail(ctx, "budi@example.com", email.sentCodes[0]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	pair, err := svc.Login(ctx, "budi@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, pair.AccessToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	var n int64
	if err := db.Model(&types.UserToken{}).Count(&n).Error; err != nil {
		t.Fatalf("count tokens: %v", err)
	}
	if n != 0 {
		t.Fatalf("token rows = %d, want 0 after logout", n)
	}

	if _, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken); err == nil {
		t.Fatalf("refresh must fail after logout")
	}
}
