package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
)

// CategoryService 商品类目管理。
type CategoryService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCategoryService(db *gorm.DB, logger *slog.Logger) *CategoryService {
	return &CategoryService{db: db, logger: logger}
}

// Create 新建类目，编号由录入方指定。
func (s *CategoryService) Create(ctx context.Context, id, name string) (*model.Category, error) {
	var exist model.Category
	err := s.db.WithContext(ctx).First(&exist, "id = ?", id).Error
	if err == nil {
		return nil, codes.New(codes.EntityExist, "Mã thể loại đã tồn tại!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create category: check id", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình tạo thể loại")
	}

	category := &model.Category{ID: id, Name: name}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		s.logger.Error("create category", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình tạo thể loại")
	}
	return category, nil
}

// List 全部类目。
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		s.logger.Error("list categories", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy danh sách thể loại")
	}
	return list, nil
}
