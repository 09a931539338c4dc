package router

import (
	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/service"
)

// getImage 按 ID 返回图片原始内容。
func getImage(svc *service.FileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		img, err := svc.Get(c.Request.Context(), c.Param("imageId"))
		if err != nil {
			fail(c, err)
			return
		}
		c.Data(200, img.ContentType, img.Data)
	}
}

// getProduct 公共商品详情（带当前价）。
func getProduct(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Request.Context(), c.Param("productId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, view)
	}
}

// getOrder 公共订单查询。
func getOrder(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, view)
	}
}
