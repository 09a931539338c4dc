package router

import (
	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/service"
)

// createCategory 新建类目。
func createCategory(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ID   string `json:"id" binding:"required"`
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		category, err := svc.Create(c.Request.Context(), req.ID, req.Name)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, category)
	}
}

// listCategories 全部类目。
func listCategories(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, list)
	}
}

// createAccount 新建后台账号。
func createAccount(svc *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required,min=6"`
			RoleID   string `json:"role_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		account, err := svc.Create(c.Request.Context(), service.CreateAccountInput{
			Username: req.Username,
			Password: req.Password,
			RoleID:   req.RoleID,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, account)
	}
}

// listNotifications 当前账号的通知收件箱。
func listNotifications(svc *service.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.Query("account_id")
		if accountID == "" {
			badRequest(c, "account_id là bắt buộc")
			return
		}
		var req listQueryRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		result, err := svc.ListForAccount(c.Request.Context(), accountID, req.toQuery())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, result)
	}
}

// markNotificationRead 标记一条投递记录为已读。
func markNotificationRead(svc *service.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkRead(c.Request.Context(), c.Param("detailId")); err != nil {
			fail(c, err)
			return
		}
		ok(c, c.Param("detailId"))
	}
}
