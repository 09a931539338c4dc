package router

import (
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/service"
)

// productForm 新建/编辑商品的 multipart 表单字段。
type productForm struct {
	ID          string `form:"id"`
	Name        string `form:"name" binding:"required"`
	CategoryID  string `form:"category_id" binding:"required"`
	Description string `form:"description"`
	Quantity    int64  `form:"quantity" binding:"min=0"`
	Status      int    `form:"status"`
	Featured    bool   `form:"featured"`
	Price       int64  `form:"price"`
}

// listProducts 商品列表（搜索 + 排序 + 分页，带当前价）。
func listProducts(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listQueryRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		result, err := svc.List(c.Request.Context(), req.toQuery())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, result)
	}
}

// createProduct 新建商品：multipart 表单 + 缩略图文件。
func createProduct(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form productForm
		if err := c.ShouldBind(&form); err != nil {
			badRequest(c, err.Error())
			return
		}
		if form.ID == "" {
			badRequest(c, "id là bắt buộc")
			return
		}
		if form.Price <= 0 {
			badRequest(c, "price phải lớn hơn 0")
			return
		}
		file, err := c.FormFile("thumbnail")
		if err != nil {
			badRequest(c, "thiếu tệp thumbnail")
			return
		}

		view, err := svc.Create(c.Request.Context(), file, service.CreateProductInput{
			ID:          form.ID,
			Name:        form.Name,
			CategoryID:  form.CategoryID,
			Description: form.Description,
			Quantity:    form.Quantity,
			Status:      form.Status,
			Featured:    form.Featured,
			Price:       form.Price,
		}, adminID(c))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, view)
	}
}

// editProduct 编辑商品：thumbnail 可选，给了才替换。
func editProduct(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form productForm
		if err := c.ShouldBind(&form); err != nil {
			badRequest(c, err.Error())
			return
		}
		var file *multipart.FileHeader
		if fh, err := c.FormFile("thumbnail"); err == nil {
			file = fh
		}

		view, err := svc.Edit(c.Request.Context(), c.Param("productId"), file, service.EditProductInput{
			Name:        form.Name,
			CategoryID:  form.CategoryID,
			Description: form.Description,
			Quantity:    form.Quantity,
			Status:      form.Status,
			Featured:    form.Featured,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, view)
	}
}

// deleteProduct 删除商品及其调价历史。
func deleteProduct(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("productId")); err != nil {
			fail(c, err)
			return
		}
		ok(c, c.Param("productId"))
	}
}

// listPrices 商品调价历史。
func listPrices(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listQueryRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		result, err := svc.PriceList(c.Request.Context(), c.Param("productId"), req.toQuery())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, result)
	}
}

// addPrice 追加调价，生效时间为 RFC3339。
func addPrice(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Price     int64  `json:"price" binding:"required,min=1"`
			AppliedAt string `json:"applied_at" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		appliedAt, err := time.Parse(time.RFC3339, req.AppliedAt)
		if err != nil {
			badRequest(c, "applied_at 格式错误，请用 RFC3339")
			return
		}

		price, err := svc.AddPrice(c.Request.Context(), c.Param("productId"), adminID(c), service.AddPriceInput{
			Price:     req.Price,
			AppliedAt: appliedAt,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, price)
	}
}

// deletePrice 删除一条尚未生效的调价。
func deletePrice(svc *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeletePrice(c.Request.Context(), c.Param("priceId")); err != nil {
			fail(c, err)
			return
		}
		ok(c, c.Param("priceId"))
	}
}

// adminID 操作人标识。后台网关在请求头注入，缺省落到 admin。
func adminID(c *gin.Context) string {
	if id := c.GetHeader("X-Admin-Id"); id != "" {
		return id
	}
	return "admin"
}
