// Package auth はユーザー登録・ログイン・トークン認証を提供します。
package auth

import (
	"errors"
	"log"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yourusername/user-service/internal/users"
)

// CredentialStore は登録済みユーザーの保存先です。
type CredentialStore interface {
	Exists(email string) bool
	FindMatch(email, password string) (users.User, bool)
	Insert(email, password string)
}

// TokenAuthority はトークンの発行と検証を担います。
type TokenAuthority interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
}

// Recorder は各操作の結果を記録します。
type Recorder interface {
	ObserveAuth(operation, outcome string)
}

// Credentials は登録・ログインで受け取る email と password の組です。
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate は両フィールドが空でないことだけを確認します。
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// Manager は認証処理をまとめた構造体です。
type Manager struct {
	store    CredentialStore
	tokens   TokenAuthority
	recorder Recorder
	logger   *log.Logger

	// Exists と Insert の間に別の登録が割り込まないようにする
	registerMu sync.Mutex
}

// NewManager は認証マネージャーを作成します。recorder と logger は nil でも構いません。
func NewManager(store CredentialStore, tokens TokenAuthority, recorder Recorder, logger *log.Logger) (*Manager, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if tokens == nil {
		return nil, errors.New("token authority is nil")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store:    store,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// Register はユーザーを登録します。トークンは発行しません。
func (m *Manager) Register(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		m.observe("register", KindValidation)
		return wrap(ErrValidation, err)
	}

	m.registerMu.Lock()
	defer m.registerMu.Unlock()

	if m.store.Exists(creds.Email) {
		m.observe("register", KindConflict)
		return ErrConflict
	}
	m.store.Insert(creds.Email, creds.Password)
	m.observe("register", "")
	return nil
}

// Login は email と password が一致すれば1時間有効なトークンを返します。
// 未登録の email とパスワード誤りは区別しません。
func (m *Manager) Login(creds Credentials) (string, error) {
	user, ok := m.store.FindMatch(creds.Email, creds.Password)
	if !ok {
		m.observe("login", KindAuthentication)
		return "", ErrAuthentication
	}

	signed, err := m.tokens.Issue(user.Email)
	if err != nil {
		m.logger.Printf("failed to issue token: %v", err)
		m.observe("login", "error")
		return "", err
	}
	m.observe("login", "")
	return signed, nil
}

// CurrentUser は Authorization ヘッダーの値からトークンを取り出し、email を返します。
func (m *Manager) CurrentUser(authorization string) (string, error) {
	if authorization == "" {
		m.observe("me", KindMissingAuth)
		return "", ErrMissingAuth
	}

	email, err := m.tokens.Verify(extractToken(authorization))
	if err != nil {
		m.observe("me", KindInvalidToken)
		return "", wrap(ErrInvalidToken, err)
	}
	m.observe("me", "")
	return email, nil
}

// Logout は何もしません。トークンはステートレスなのでサーバー側で無効化するものがありません。
func (m *Manager) Logout() {
	m.observe("logout", "")
}

func (m *Manager) observe(operation string, kind Kind) {
	if m.recorder == nil {
		return
	}
	outcome := "success"
	if kind != "" {
		outcome = string(kind)
	}
	m.recorder.ObserveAuth(operation, outcome)
}

// extractToken は値を半角スペースで区切った2番目の要素を返します。
// スキームが "Bearer" かどうかは確認しません。2番目の要素がなければ空文字です。
func extractToken(authorization string) string {
	parts := strings.Split(authorization, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
