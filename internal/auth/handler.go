package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserKey は、ハンドラー間でログイン済みユーザーの email を共有するためのキーです。
const ContextUserKey = "auth.user"

// ContextRequestIDKey はリクエストIDを共有するためのキーです。
const ContextRequestIDKey = "request.id"

// Service はハンドラーが利用する認証処理です。*Manager が実装します。
type Service interface {
	Register(creds Credentials) error
	Login(creds Credentials) (string, error)
	CurrentUser(authorization string) (string, error)
	Logout()
}

// RegisterHandler は POST /api/auth/register のハンドラーを返します。
func RegisterHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds Credentials
		if !bindCredentials(c, &creds) {
			return
		}

		if err := svc.Register(creds); err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
	}
}

// LoginHandler は POST /api/auth/login のハンドラーを返します。
func LoginHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds Credentials
		if !bindCredentials(c, &creds) {
			return
		}

		signed, err := svc.Login(creds)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}

// MeHandler は GET /api/users/me のハンドラーを返します。
// RequireToken の後ろに置いた場合はコンテキストの email をそのまま使います。
func MeHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email := c.GetString(ContextUserKey); email != "" {
			c.JSON(http.StatusOK, gin.H{"email": email})
			return
		}

		email, err := svc.CurrentUser(c.GetHeader("Authorization"))
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": email})
	}
}

// LogoutHandler は POST /api/auth/logout のハンドラーを返します。
func LogoutHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Logout()
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
	}
}

// bindCredentials は本文を読み込みます。本文が空の場合は空の Credentials として扱います。
func bindCredentials(c *gin.Context, creds *Credentials) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "Request body must be a JSON object with email and password.",
		})
		return false
	}
	return true
}

func respondWithError(c *gin.Context, err error) {
	var authErr *Error
	if errors.As(err, &authErr) {
		c.JSON(authErr.Status(), gin.H{
			"code":    authErr.Kind,
			"message": authErr.Message,
		})
		return
	}

	log.Printf("request_id=%s internal error: %v", c.GetString(ContextRequestIDKey), err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "INTERNAL_ERROR",
		"message": "Internal server error.",
	})
}
