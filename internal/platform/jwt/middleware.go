// Package jwtmw はHS256のBearerトークンによる認証を提供します。
package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"facets_backend/internal/api"
)

// ContextSubject はトークンのsubクレームを保存するコンテキストキーです。
const ContextSubject = "subject"

// AuthRequired returns a Gin middleware function that validates HS256 bearer
// tokens signed with secret and rejects unauthenticated requests with 401.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(c, api.DetailAuthMissing)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, api.DetailAuthInvalid)
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorDetail{Detail: detail})
}
