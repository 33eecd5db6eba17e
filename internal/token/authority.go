// Package token は署名付きトークンの発行と検証を提供します。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Lifetime はトークンの有効期間です（発行から1時間固定）。
const Lifetime = time.Hour

// ErrInvalid は署名不正・形式不正・期限切れのいずれかで検証に失敗したことを表します。
var ErrInvalid = errors.New("invalid or expired token")

// Claims はトークンに埋め込むクレームです。email 以外には iat と exp のみを持ちます。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Option は Authority の設定を変更します。
type Option func(*Authority)

// WithClock は現在時刻の取得方法を差し替えます（テスト用）。
func WithClock(now func() time.Time) Option {
	return func(a *Authority) {
		if now != nil {
			a.now = now
		}
	}
}

// Authority はプロセス共通の秘密鍵で HS256 トークンを発行・検証します。
type Authority struct {
	secret []byte
	now    func() time.Time
}

// NewAuthority は Authority を作成します。
func NewAuthority(secret string, opts ...Option) (*Authority, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	a := &Authority{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Issue は email を主張するトークンを発行します。
func (a *Authority) Issue(email string) (string, error) {
	issuedAt := a.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(Lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify は署名と有効期限を検証し、埋め込まれた email を返します。
func (a *Authority) Verify(tokenStr string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalid
	}
	if claims.Email == "" {
		return "", fmt.Errorf("%w: missing email claim", ErrInvalid)
	}
	return claims.Email, nil
}
