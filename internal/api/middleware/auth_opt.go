package middleware

import (
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失则身份为零值
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set(IdentityKey, model.UserIdentity{})
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(token)

		if err != nil {
			c.Set(IdentityKey, model.UserIdentity{})
		} else {
			c.Set(IdentityKey, model.UserIdentity{
				UserID:     claims.UserID,
				UserName:   claims.UserName,
				HeadImgURL: claims.HeadImgURL,
			})
			newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}
