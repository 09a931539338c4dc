package router

import (
	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/service"
)

// placeOrder 顾客下单入口。
// 成交后由 outbox → Kafka 链路异步生成员工通知。
func placeOrder(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FullName string `json:"full_name" binding:"required"`
			Items    []struct {
				ProductID string `json:"product_id" binding:"required"`
				Quantity  int64  `json:"quantity" binding:"required,min=1"`
			} `json:"items" binding:"required,min=1,dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		items := make([]service.OrderItemInput, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, service.OrderItemInput{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
		}

		view, err := svc.Create(c.Request.Context(), req.FullName, items)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, view)
	}
}
