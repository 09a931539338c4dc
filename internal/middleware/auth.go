package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/codes"
)

// AdminToken 校验后台请求头 X-Admin-Token。
// demo 级别保护：真实部署应换成员工账号体系的会话校验。
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    codes.Error,
				"message": "admin token 无效",
			})
			return
		}
		c.Next()
	}
}
