package service

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shop_backoffice/internal/model"
)

// newTestDB 每个测试独立的内存库。
// 命名 + cache=shared 保证连接池里的连接看到同一份数据。
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProductService(t *testing.T) (*ProductService, *FileService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	files := NewFileService(db, 1<<20, testLogger())
	return NewProductService(db, files, testLogger()), files, db
}

func seedCategory(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Category{ID: id, Name: name}).Error)
}

func seedProduct(t *testing.T, db *gorm.DB, id, name, categoryID string, quantity int64) {
	t.Helper()
	require.NoError(t, db.Create(&model.Product{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		Quantity:   quantity,
		Status:     1,
	}).Error)
}

func seedPrice(t *testing.T, db *gorm.DB, productID string, price int64, appliedAt time.Time) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, db.Create(&model.PriceDetail{
		ID:        id,
		AdminID:   "admin",
		ProductID: productID,
		NewPrice:  price,
		AppliedAt: appliedAt,
	}).Error)
	return id
}

// testFileHeader 构造一个真实的 multipart.FileHeader 供上传路径测试。
func testFileHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="thumbnail"; filename=%q`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["thumbnail"][0]
}

func countRows[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var m T
	var n int64
	require.NoError(t, db.Model(&m).Count(&n).Error)
	return n
}
