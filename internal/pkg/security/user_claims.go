package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Wellspring"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims 会话层签发的身份信息，积分与日志只消费不生产
type UserClaims struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	HeadImgURL string `json:"head_img_url"`
	jwt.RegisteredClaims
}
