package middleware

import (
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/response"
	"Wellspring/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// IdentityKey gin Context 中用户身份的存放键
const IdentityKey = "identity"

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		identity := model.UserIdentity{
			UserID:     claims.UserID,
			UserName:   claims.UserName,
			HeadImgURL: claims.HeadImgURL,
		}
		c.Set(IdentityKey, identity)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// CurrentUser 取出 AuthMiddleware 注入的身份；可选鉴权下可能为零值
func CurrentUser(c *gin.Context) model.UserIdentity {
	value, ok := c.Get(IdentityKey)
	if !ok {
		return model.UserIdentity{}
	}
	identity, ok := value.(model.UserIdentity)
	if !ok {
		return model.UserIdentity{}
	}
	return identity
}
