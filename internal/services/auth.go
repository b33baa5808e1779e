package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	pkgerrors "github.com/stratahub/strata-portal/internal/pkg/errors"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/types"
)

// AuthService issues and verifies bearer tokens for portal accounts. The
// registry core never sees any of this; access control stays at the HTTP edge.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db     *gorm.DB
	log    *logger.Logger
	secret []byte
	ttl    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, secret string, ttl time.Duration) AuthService {
	return &authService{
		db:     db,
		log:    baseLog.With("service", "AuthService"),
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	var user types.User
	err := as.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, pkgerrors.ErrUnauthorized
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, pkgerrors.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &user, nil
}

func (as *authService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, pkgerrors.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, pkgerrors.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, pkgerrors.ErrUnauthorized
	}
	return userID, nil
}
