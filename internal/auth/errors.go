package auth

import "net/http"

// Kind は認証処理の失敗種別です。レスポンスの code としても使われます。
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindConflict       Kind = "USER_EXISTS"
	KindAuthentication Kind = "INVALID_CREDENTIALS"
	KindMissingAuth    Kind = "MISSING_AUTHORIZATION"
	KindInvalidToken   Kind = "INVALID_TOKEN"
)

// Error は認証処理で呼び出し元へ返すエラーです。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is は Kind が一致すれば同じエラーとみなします。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Status は Kind に対応する HTTP ステータスコードを返します。
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication, KindMissingAuth, KindInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrValidation     = &Error{Kind: KindValidation, Message: "Email and password are required."}
	ErrConflict       = &Error{Kind: KindConflict, Message: "User already exists."}
	ErrAuthentication = &Error{Kind: KindAuthentication, Message: "Invalid email or password."}
	ErrMissingAuth    = &Error{Kind: KindMissingAuth, Message: "Authorization header is required."}
	ErrInvalidToken   = &Error{Kind: KindInvalidToken, Message: "Invalid or expired token."}
)

func wrap(base *Error, cause error) *Error {
	return &Error{Kind: base.Kind, Message: base.Message, Err: cause}
}
