package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	pkgerrors "github.com/stratahub/strata-portal/internal/pkg/errors"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/services"
	"github.com/stratahub/strata-portal/internal/types"
)

func newAuthService(t *testing.T, ttl time.Duration) services.AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &types.User{
		Email:     "ada@example.com",
		Password:  string(hashed),
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return services.NewAuthService(db, logger.NewNop(), "test-secret", ttl)
}

func TestLoginAndVerify(t *testing.T) {
	svc := newAuthService(t, time.Hour)

	token, user, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || user == nil {
		t.Fatal("login returned empty token or user")
	}

	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("token subject %s does not match user %s", userID, user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t, time.Hour)

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "correct horse"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("unknown account: %v", err)
	}
}

func TestVerifyRejectsExpiredAndGarbageTokens(t *testing.T) {
	svc := newAuthService(t, -time.Minute)

	token, _, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("expired token: %v", err)
	}
	if _, err := svc.VerifyToken("not.a.token"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("garbage token: %v", err)
	}
}
