package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequireToken は Authorization ヘッダーのトークンを検証するミドルウェアを返します。
// 成功時は email を ContextUserKey に保存します。
func RequireToken(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := svc.CurrentUser(c.GetHeader("Authorization"))
		if err != nil {
			respondWithError(c, err)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, email)
		c.Next()
	}
}

// RequestID は X-Request-ID を付与するミドルウェアです。受信ヘッダーに値があればそれを使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
