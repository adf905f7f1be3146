// Package middleware はginの共通ミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを受け渡すHTTPヘッダーです。
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID はリクエストごとにIDを割り当てます。
// クライアントがX-Request-IDを指定した場合はその値を引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はコンテキストに保存されたリクエストIDを返します。未設定なら空文字です。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
