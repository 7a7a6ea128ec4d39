package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims содержит ID пользователя в uid, subject используется как запасной.
type Claims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// Tokens выпускает и проверяет HS256 bearer-токены.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(userID uuid.UUID) (string, error) {
	op := "Tokens.Issue()"

	now := t.now()
	claims := Claims{
		UID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Parse проверяет токен и возвращает ID пользователя, для которого он выпущен.
func (t *Tokens) Parse(token string) (uuid.UUID, error) {
	op := "Tokens.Parse()"

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%s: invalid token: %w", op, domain.ErrUnauthenticated)
	}

	uid := claims.UID
	if uid == "" {
		uid = claims.Subject
	}
	id, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: missing uid: %w", op, domain.ErrUnauthenticated)
	}
	return id, nil
}

// CheckPassword сравнивает пароль с bcrypt-хешем.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrUnauthenticated
		}
		return fmt.Errorf("CheckPassword(): %w", err)
	}
	return nil
}

// BootstrapAdminID — стабильный ID пользователя настроенного администратора.
func BootstrapAdminID(username string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("admin:"+username))
}

type ctxKey struct{}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserID возвращает вошедшего пользователя или ErrUnauthenticated.
func UserID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return id, nil
}
