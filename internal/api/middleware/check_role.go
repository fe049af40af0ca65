package middleware

import (
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice("roles")

		hasPermission := false
		for _, required := range requiredRoles {
			for _, userRole := range roles {
				if required == userRole {
					hasPermission = true
					break
				}
			}
			if hasPermission {
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "Forbidden", "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentActor 从 Context 中取出当前操作者，ADMIN 优先于 MODERATOR
func CurrentActor(c *gin.Context) model.Actor {
	userID := c.GetUint64("user_id")
	roles := c.GetStringSlice("roles")

	role := ""
	for _, r := range roles {
		if r == consts.RoleAdmin {
			role = consts.RoleAdmin
			break
		}
		if r == consts.RoleModerator {
			role = consts.RoleModerator
		}
	}

	return model.Actor{ID: userID, Role: role}
}
