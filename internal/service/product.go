package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
)

// 商品列表允许的排序字段 → 实际列。
var productSortColumns = map[string]string{
	"name":       "p.name",
	"sold":       "p.sold",
	"quantity":   "p.quantity",
	"status":     "p.status",
	"created_at": "p.created_at",
	"price":      "pd.new_price",
	"applied_at": "pd.applied_at",
}

// 调价历史允许的排序字段。
var priceSortColumns = map[string]string{
	"applied_at": "applied_at",
	"created_at": "created_at",
	"new_price":  "new_price",
}

// ProductService 商品与调价历史的读写。
type ProductService struct {
	db     *gorm.DB
	files  *FileService
	logger *slog.Logger
}

func NewProductService(db *gorm.DB, files *FileService, logger *slog.Logger) *ProductService {
	return &ProductService{db: db, files: files, logger: logger}
}

// ProductView 是商品 + 当前价的反规范化视图。
// 没有任何已生效调价记录时 price/applied_at 为空。
type ProductView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CategoryID  string     `json:"category_id"`
	Thumbnail   string     `json:"thumbnail"`
	Description string     `json:"description"`
	Sold        int64      `json:"sold"`
	Quantity    int64      `json:"quantity"`
	Status      int        `json:"status"`
	Featured    bool       `json:"featured"`
	Price       *int64     `json:"price,omitempty"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
}

// CreateProductInput 新建商品入参，ID 由录入方指定。
type CreateProductInput struct {
	ID          string
	Name        string
	CategoryID  string
	Description string
	Quantity    int64
	Status      int
	Featured    bool
	Price       int64
}

// EditProductInput 编辑商品入参，整个文档按此替换。
type EditProductInput struct {
	Name        string
	CategoryID  string
	Description string
	Quantity    int64
	Status      int
	Featured    bool
}

// AddPriceInput 新调价入参，生效时间由调用方给定。
type AddPriceInput struct {
	Price     int64
	AppliedAt time.Time
}

// List 商品列表：按名称不区分大小写地模糊搜索，
// 每个商品关联 applied_at 已到达的最新一条调价（没有则价格留空），
// 再排序分页。
//
// total 统计的是整张表而不是搜索命中的子集，前端分页按此口径消费。
func (s *ProductService) List(ctx context.Context, q ListQuery) (*Paged[ProductView], error) {
	q, sortColumn := q.normalize(productSortColumns, "name")
	now := time.Now()

	tx := s.db.WithContext(ctx).Table("products AS p").
		Select(`p.id, p.name, p.category_id, p.thumbnail, p.description,
			p.sold, p.quantity, p.status, p.featured,
			pd.new_price AS price, pd.applied_at AS applied_at`).
		Joins(`LEFT JOIN price_details pd ON pd.id = (
			SELECT id FROM price_details
			WHERE product_id = p.id AND applied_at <= ?
			ORDER BY applied_at DESC LIMIT 1)`, now)
	if q.Search != "" {
		tx = tx.Where("LOWER(p.name) LIKE LOWER(?)", "%"+q.Search+"%")
	}

	var rows []ProductView
	err := tx.Order(sortColumn + " " + q.SortOrder).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Scan(&rows).Error
	if err != nil {
		s.logger.Error("list products", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy danh sách sản phẩm")
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		s.logger.Error("count products", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy danh sách sản phẩm")
	}

	return newPaged(rows, total, q.Page, q.Limit), nil
}

// Create 新建商品并写入首条调价记录。
// 顺序：编号查重 → 名称查重 → 类目存在性 → 上传缩略图 → 落商品 → 落价格。
// 中间任何一步失败都直接返回，已完成的副作用不回滚。
func (s *ProductService) Create(ctx context.Context, file *multipart.FileHeader, in CreateProductInput, adminID string) (*ProductView, error) {
	var exist model.Product
	err := s.db.WithContext(ctx).First(&exist, "id = ?", in.ID).Error
	if err == nil {
		return nil, codes.New(codes.EntityExist, "Mã sản phẩm đã tồn tại!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.fail("create product: check id", err, "Có lỗi xảy ra trong quá trình tạo sản phẩm")
	}

	err = s.db.WithContext(ctx).First(&exist, "name = ?", in.Name).Error
	if err == nil {
		return nil, codes.New(codes.EntityExist, "Tên sản phẩm đã tồn tại!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.fail("create product: check name", err, "Có lỗi xảy ra trong quá trình tạo sản phẩm")
	}

	var category model.Category
	err = s.db.WithContext(ctx).First(&category, "id = ?", in.CategoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Thể loại không tồn tại!")
	}
	if err != nil {
		return nil, s.fail("create product: check category", err, "Có lỗi xảy ra trong quá trình tạo sản phẩm")
	}

	thumbnail, err := s.files.Upload(ctx, file)
	if err != nil {
		// 上传失败的业务码与提示语原样外传
		return nil, err
	}

	product := &model.Product{
		ID:          in.ID,
		Name:        in.Name,
		CategoryID:  category.ID,
		Thumbnail:   thumbnail,
		Description: in.Description,
		Sold:        0,
		Quantity:    in.Quantity,
		Status:      in.Status,
		Featured:    in.Featured,
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, s.fail("create product", err, "Có lỗi xảy ra trong quá trình tạo sản phẩm")
	}

	price := &model.PriceDetail{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		ProductID: product.ID,
		NewPrice:  in.Price,
		AppliedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(price).Error; err != nil {
		return nil, s.fail("create product: initial price", err, "Có lỗi xảy ra trong quá trình tạo sản phẩm")
	}

	view := productView(product)
	view.Price = &price.NewPrice
	view.AppliedAt = &price.AppliedAt
	return view, nil
}

// Edit 整体替换商品文档，sold 随替换归零。
// 注意：名称查重没有排除当前商品自身，不改名保存同样会命中。
func (s *ProductService) Edit(ctx context.Context, productID string, file *multipart.FileHeader, in EditProductInput) (*ProductView, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Không tìm thấy sản phẩm")
	}
	if err != nil {
		return nil, s.fail("edit product: load", err, "Có lỗi xảy ra trong quá trình chỉnh sữa sản phẩm")
	}

	var exist model.Product
	err = s.db.WithContext(ctx).First(&exist, "name = ?", in.Name).Error
	if err == nil {
		return nil, codes.New(codes.EntityExist, "Tên sản phẩm đã tồn tại!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.fail("edit product: check name", err, "Có lỗi xảy ra trong quá trình chỉnh sữa sản phẩm")
	}

	var category model.Category
	err = s.db.WithContext(ctx).First(&category, "id = ?", in.CategoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Thể loại không tồn tại!")
	}
	if err != nil {
		return nil, s.fail("edit product: check category", err, "Có lỗi xảy ra trong quá trình chỉnh sữa sản phẩm")
	}

	replacement := map[string]any{
		"name":        in.Name,
		"category_id": category.ID,
		"description": in.Description,
		"sold":        int64(0),
		"quantity":    in.Quantity,
		"status":      in.Status,
		"featured":    in.Featured,
	}

	if file != nil {
		thumbnail, err := s.files.Upload(ctx, file)
		if err != nil {
			return nil, err
		}
		replacement["thumbnail"] = thumbnail
		// 新图落库成功后才清理旧图
		if err := s.files.Delete(ctx, product.Thumbnail); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(replacement).Error; err != nil {
		return nil, s.fail("edit product: update", err, "Có lỗi xảy ra trong quá trình chỉnh sữa sản phẩm")
	}

	if err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, s.fail("edit product: reload", err, "Có lỗi xảy ra trong quá trình chỉnh sữa sản phẩm")
	}
	return productView(&product), nil
}

// Delete 删除商品：被任意订单行引用时拒绝；
// 否则按 缩略图 → 调价历史 → 商品 的顺序删除，非事务执行。
func (s *ProductService) Delete(ctx context.Context, productID string) error {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return codes.New(codes.EntityNotExist, "Không tìm thấy sản phẩm")
	}
	if err != nil {
		return s.fail("delete product: load", err, "Có lỗi xảy ra trong quá trình xóa sản phẩm")
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&model.OrderDetail{}).
		Where("product_id = ?", productID).
		Count(&refs).Error; err != nil {
		return s.fail("delete product: count refs", err, "Có lỗi xảy ra trong quá trình xóa sản phẩm")
	}
	if refs > 0 {
		return codes.New(codes.Error, "Không thể xóa sản phẩm")
	}

	if err := s.files.Delete(ctx, product.Thumbnail); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Delete(&model.PriceDetail{}, "product_id = ?", productID).Error; err != nil {
		return s.fail("delete product: prices", err, "Có lỗi xảy ra trong quá trình xóa sản phẩm")
	}
	if err := s.db.WithContext(ctx).
		Delete(&model.Product{}, "id = ?", productID).Error; err != nil {
		return s.fail("delete product", err, "Có lỗi xảy ra trong quá trình xóa sản phẩm")
	}
	return nil
}

// PriceList 某商品的调价历史，分页口径与商品列表一致。
func (s *ProductService) PriceList(ctx context.Context, productID string, q ListQuery) (*Paged[model.PriceDetail], error) {
	q, sortColumn := q.normalize(priceSortColumns, "applied_at")

	var rows []model.PriceDetail
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order(sortColumn + " " + q.SortOrder).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, s.fail("list prices", err, "Có lỗi xảy ra trong quá trình lấy danh sách giá")
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.PriceDetail{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return nil, s.fail("count prices", err, "Có lỗi xảy ra trong quá trình lấy danh sách giá")
	}

	return newPaged(rows, total, q.Page, q.Limit), nil
}

// AddPrice 为商品追加一条调价，生效时间由调用方指定，可以在未来。
func (s *ProductService) AddPrice(ctx context.Context, productID, adminID string, in AddPriceInput) (*model.PriceDetail, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Không tìm thấy sản phẩm")
	}
	if err != nil {
		return nil, s.fail("add price: load product", err, "Có lỗi xảy ra trong quá trình tạo giá cho sản phẩm")
	}

	price := &model.PriceDetail{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		ProductID: productID,
		NewPrice:  in.Price,
		AppliedAt: in.AppliedAt,
	}
	if err := s.db.WithContext(ctx).Create(price).Error; err != nil {
		return nil, s.fail("add price", err, "Có lỗi xảy ra trong quá trình tạo giá cho sản phẩm")
	}
	return price, nil
}

// DeletePrice 删除一条尚未生效的调价。
// applied_at 已到达（早于或恰好等于当前时刻）的记录不可删除。
func (s *ProductService) DeletePrice(ctx context.Context, priceID string) error {
	var price model.PriceDetail
	err := s.db.WithContext(ctx).First(&price, "id = ?", priceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return codes.New(codes.EntityNotExist, "Không tìm thấy giá")
	}
	if err != nil {
		return s.fail("delete price: load", err, "Có lỗi xảy ra trong quá trình xóa giá mới")
	}

	now := time.Now()
	if price.AppliedAt.Before(now) || price.AppliedAt.Equal(now) {
		return codes.New(codes.Error, "Không thể xóa giá này vì đã áp dụng")
	}

	if err := s.db.WithContext(ctx).Delete(&model.PriceDetail{}, "id = ?", priceID).Error; err != nil {
		return s.fail("delete price", err, "Có lỗi xảy ra trong quá trình xóa giá mới")
	}
	return nil
}

// Get 单个商品 + 当前价。没有已生效调价时价格留空。
func (s *ProductService) Get(ctx context.Context, productID string) (*ProductView, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Không tìm thấy sản phẩm")
	}
	if err != nil {
		return nil, s.fail("get product", err, "Có lỗi xảy ra trong quá trình lấy sản phẩm")
	}

	price, err := s.currentPrice(ctx, s.db, productID, time.Now())
	if err != nil {
		return nil, s.fail("get product: price", err, "Có lỗi xảy ra trong quá trình lấy sản phẩm")
	}

	view := productView(&product)
	if price != nil {
		view.Price = &price.NewPrice
		view.AppliedAt = &price.AppliedAt
	}
	return view, nil
}

// currentPrice 取 applied_at <= now 的最新一条调价，没有时返回 nil。
// 订单侧在事务内复用，故 db 由调用方传入。
func (s *ProductService) currentPrice(ctx context.Context, db *gorm.DB, productID string, now time.Time) (*model.PriceDetail, error) {
	var price model.PriceDetail
	err := db.WithContext(ctx).
		Where("product_id = ? AND applied_at <= ?", productID, now).
		Order("applied_at DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// fail 记录基础设施错误并降级为通用业务错误。
func (s *ProductService) fail(op string, err error, message string) error {
	s.logger.Error(op, "error", err)
	return codes.Internal(message)
}

func productView(p *model.Product) *ProductView {
	return &ProductView{
		ID:          p.ID,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Thumbnail:   p.Thumbnail,
		Description: p.Description,
		Sold:        p.Sold,
		Quantity:    p.Quantity,
		Status:      p.Status,
		Featured:    p.Featured,
	}
}
