package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
)

// AccountService 后台账号管理。
type AccountService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAccountService(db *gorm.DB, logger *slog.Logger) *AccountService {
	return &AccountService{db: db, logger: logger}
}

// CreateAccountInput 新建账号入参。
type CreateAccountInput struct {
	Username string
	Password string
	RoleID   string
}

// Create 新建账号。username 先查重，唯一索引兜底并发竞态。
func (s *AccountService) Create(ctx context.Context, in CreateAccountInput) (*model.Account, error) {
	var exist model.Account
	err := s.db.WithContext(ctx).First(&exist, "username = ?", in.Username).Error
	if err == nil {
		return nil, codes.New(codes.EntityExist, "Tên đăng nhập đã tồn tại!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create account: check username", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình tạo tài khoản")
	}

	account := &model.Account{
		ID:       uuid.NewString(),
		Username: in.Username,
		Password: in.Password,
		Status:   model.AccountActive,
		RoleID:   in.RoleID,
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, codes.New(codes.EntityExist, "Tên đăng nhập đã tồn tại!")
		}
		s.logger.Error("create account", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình tạo tài khoản")
	}
	return account, nil
}

// ListStaff 在职账号，通知投递的收件人集合。
func (s *AccountService) ListStaff(ctx context.Context) ([]model.Account, error) {
	var staff []model.Account
	if err := s.db.WithContext(ctx).
		Where("status = ?", model.AccountActive).
		Find(&staff).Error; err != nil {
		s.logger.Error("list staff", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy danh sách tài khoản")
	}
	return staff, nil
}
