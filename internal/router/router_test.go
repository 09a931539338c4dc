package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/model"
	"shop_backoffice/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServices(t *testing.T) (Services, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Account{},
		&model.Category{},
		&model.Product{},
		&model.PriceDetail{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Notification{},
		&model.NotificationDetail{},
		&model.Image{},
	))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	files := service.NewFileService(db, 1<<20, logger)
	products := service.NewProductService(db, files, logger)
	return Services{
		Products:      products,
		Categories:    service.NewCategoryService(db, logger),
		Orders:        service.NewOrderService(db, products, nil, "", logger),
		Accounts:      service.NewAccountService(db, logger),
		Notifications: service.NewNotificationService(db, logger),
		Files:         files,
	}, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newTestServices(t)
	r := gin.New()
	r.GET("/api/public/product/:productId", getProduct(svc.Products))

	w := doJSON(t, r, http.MethodGet, "/api/public/product/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Code    codes.Code `json:"code"`
		Message string     `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, codes.EntityNotExist, resp.Code)
	assert.Equal(t, "Không tìm thấy sản phẩm", resp.Message)
}

func TestPlaceOrder(t *testing.T) {
	svc, db := newTestServices(t)
	r := gin.New()
	r.POST("/api/orders", placeOrder(svc.Orders))

	require.NoError(t, db.Create(&model.Category{ID: "C1", Name: "Đồ uống"}).Error)
	require.NoError(t, db.Create(&model.Product{
		ID: "P1", Name: "Trà sữa", CategoryID: "C1", Quantity: 10, Status: 1,
	}).Error)
	require.NoError(t, db.Create(&model.PriceDetail{
		ID: uuid.NewString(), AdminID: "admin", ProductID: "P1",
		NewPrice: 25000, AppliedAt: time.Now().Add(-time.Hour),
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"full_name": "Nguyễn Văn A",
		"items":     []gin.H{{"product_id": "P1", "quantity": 2}},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code codes.Code `json:"code"`
		Data struct {
			ID     string `json:"id"`
			Amount int64  `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, codes.Success, resp.Code)
	assert.Equal(t, int64(50000), resp.Data.Amount)

	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", "P1").Error)
	assert.Equal(t, int64(8), product.Quantity)
	assert.Equal(t, int64(2), product.Sold)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, _ := newTestServices(t)
	r := gin.New()
	r.POST("/api/orders", placeOrder(svc.Orders))

	// 缺客户名
	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{{"product_id": "P1", "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 空订单
	w = doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"full_name": "Nguyễn Văn A",
		"items":     []gin.H{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminTokenGuard(t *testing.T) {
	svc, _ := newTestServices(t)
	r := gin.New()
	admin := r.Group("/api/admin", middleware.AdminToken("sekrit"))
	admin.GET("/categories", listCategories(svc.Categories))

	w := doJSON(t, r, http.MethodGet, "/api/admin/categories", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/categories", nil,
		map[string]string{"X-Admin-Token": "sekrit"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	svc, _ := newTestServices(t)
	r := gin.New()
	r.POST("/categories", createCategory(svc.Categories))

	body := gin.H{"id": "C1", "name": "Đồ uống"}
	w := doJSON(t, r, http.MethodPost, "/categories", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/categories", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code codes.Code `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, codes.EntityExist, resp.Code)
}
