package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
)

// 允许上传的图片类型。
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// FileService 负责图片的存取。内容直接落 images 表，对外只暴露 ID。
type FileService struct {
	db       *gorm.DB
	maxBytes int64
	logger   *slog.Logger
}

func NewFileService(db *gorm.DB, maxBytes int64, logger *slog.Logger) *FileService {
	return &FileService{db: db, maxBytes: maxBytes, logger: logger}
}

// Upload 校验并保存 multipart 上传的图片，返回存储 ID。
// 失败时返回带业务码的错误，调用方原样向外传递。
func (s *FileService) Upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", codes.New(codes.Error, "Thiếu tệp hình ảnh!")
	}
	if fh.Size > s.maxBytes {
		return "", codes.New(codes.Error, "Hình ảnh vượt quá dung lượng cho phép!")
	}

	f, err := fh.Open()
	if err != nil {
		s.logger.Error("open upload", "file", fh.Filename, "error", err)
		return "", codes.Internal("Có lỗi xảy ra trong quá trình tải hình ảnh lên")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		s.logger.Error("read upload", "file", fh.Filename, "error", err)
		return "", codes.Internal("Có lỗi xảy ra trong quá trình tải hình ảnh lên")
	}
	if int64(len(data)) > s.maxBytes {
		return "", codes.New(codes.Error, "Hình ảnh vượt quá dung lượng cho phép!")
	}

	return s.UploadBytes(ctx, fh.Filename, fh.Header.Get("Content-Type"), data)
}

// UploadBytes 是 Upload 的核心，便于非 HTTP 调用方与测试直接使用。
func (s *FileService) UploadBytes(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if !allowedImageTypes[contentType] {
		return "", codes.New(codes.Error, "Định dạng hình ảnh không được hỗ trợ!")
	}
	if len(data) == 0 {
		return "", codes.New(codes.Error, "Thiếu tệp hình ảnh!")
	}

	img := &model.Image{
		ID:          uuid.NewString(),
		FileName:    name,
		ContentType: contentType,
		Data:        data,
	}
	if err := s.db.WithContext(ctx).Create(img).Error; err != nil {
		s.logger.Error("save image", "file", name, "error", err)
		return "", codes.Internal("Có lỗi xảy ra trong quá trình tải hình ảnh lên")
	}
	return img.ID, nil
}

// Get 按 ID 取回图片。
func (s *FileService) Get(ctx context.Context, id string) (*model.Image, error) {
	var img model.Image
	err := s.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Không tìm thấy hình ảnh")
	}
	if err != nil {
		s.logger.Error("get image", "id", id, "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy hình ảnh")
	}
	return &img, nil
}

// Delete 删除图片；目标不存在时视为成功，保证删除流程可重放。
func (s *FileService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&model.Image{}, "id = ?", id).Error; err != nil {
		s.logger.Error("delete image", "id", id, "error", err)
		return codes.Internal("Có lỗi xảy ra trong quá trình xóa hình ảnh")
	}
	return nil
}
