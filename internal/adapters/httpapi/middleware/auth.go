package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const credentialKey = "auth"

// BearerCredential توکن هدر Authorization را در context قرار می‌دهد؛ اعتبارسنجی در سرویس انجام می‌شود
func BearerCredential() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				c.Set(credentialKey, token)
			}
		}
		c.Next()
	}
}

// Credential prefers the credential from the request body and falls back to the header.
func Credential(c *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return c.GetString(credentialKey)
}
