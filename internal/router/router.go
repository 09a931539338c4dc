package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/config"
	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/service"
)

// Services 打包路由需要的全部服务依赖。
type Services struct {
	Products      *service.ProductService
	Categories    *service.CategoryService
	Orders        *service.OrderService
	Accounts      *service.AccountService
	Notifications *service.NotificationService
	Files         *service.FileService
}

// Setup 注册全部 HTTP 路由。
// 公共接口免认证；后台接口统一过 X-Admin-Token。
func Setup(r *gin.Engine, svc Services, rdb *rd.Client, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	public := r.Group("/api/public")
	{
		public.GET("/image/:imageId", getImage(svc.Files))
		public.GET("/product/:productId", getProduct(svc.Products))
		public.GET("/order/:orderId", getOrder(svc.Orders))
	}

	// 顾客下单：免认证，按 IP 限流
	r.POST("/api/orders",
		middleware.RedisRateLimit(rdb, cfg.OrderRateLimit, cfg.OrderRateWindow),
		placeOrder(svc.Orders))

	admin := r.Group("/api/admin", middleware.AdminToken(cfg.AdminToken))
	{
		admin.GET("/products", listProducts(svc.Products))
		admin.POST("/products", createProduct(svc.Products))
		admin.PUT("/products/:productId", editProduct(svc.Products))
		admin.DELETE("/products/:productId", deleteProduct(svc.Products))

		admin.GET("/products/:productId/prices", listPrices(svc.Products))
		admin.POST("/products/:productId/prices", addPrice(svc.Products))
		admin.DELETE("/prices/:priceId", deletePrice(svc.Products))

		admin.GET("/categories", listCategories(svc.Categories))
		admin.POST("/categories", createCategory(svc.Categories))

		admin.POST("/accounts", createAccount(svc.Accounts))

		admin.GET("/notifications", listNotifications(svc.Notifications))
		admin.PUT("/notifications/:detailId/read", markNotificationRead(svc.Notifications))
	}
}

// listQueryRequest 分页列表的统一 query 参数。
type listQueryRequest struct {
	Search    string `form:"search"`
	SortField string `form:"sort_field"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

func (r listQueryRequest) toQuery() service.ListQuery {
	return service.ListQuery{
		Search:    r.Search,
		SortField: r.SortField,
		SortOrder: r.SortOrder,
		Page:      r.Page,
		Limit:     r.Limit,
	}
}

// ok 统一成功响应。
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": codes.Success, "data": data})
}

// fail 统一错误响应：业务错误按其码与提示语返回，其余归一为 500。
func fail(c *gin.Context, err error) {
	var de *codes.DomainError
	if errors.As(err, &de) {
		c.JSON(de.Status, gin.H{"code": de.Code, "message": de.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    codes.Error,
		"message": "Có lỗi xảy ra, vui lòng thử lại sau",
	})
}

// badRequest 入参校验失败。
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": codes.Error, "message": msg})
}
