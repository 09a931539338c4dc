package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
)

// 通知收件箱允许的排序字段。
var notificationSortColumns = map[string]string{
	"created_at": "nd.created_at",
}

// NotificationService 订单通知及按员工的投递记录。
type NotificationService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewNotificationService(db *gorm.DB, logger *slog.Logger) *NotificationService {
	return &NotificationService{db: db, logger: logger}
}

// NotificationView 收件箱一行：投递记录 + 通知正文。
type NotificationView struct {
	DetailID       string    `json:"detail_id"`
	NotificationID string    `json:"notification_id"`
	OrderID        string    `json:"order_id"`
	Message        string    `json:"message"`
	Status         bool      `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateNotification 生成订单通知。
// order_id 唯一：重复创建返回已存在的记录，配合消息重复投递。
func (s *NotificationService) CreateNotification(ctx context.Context, orderID, fullName string) (*model.Notification, bool, error) {
	n := &model.Notification{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Message: fmt.Sprintf("Có đơn đặt hàng %s từ khách hàng %s", orderID, fullName),
	}
	err := s.db.WithContext(ctx).Create(n).Error
	if isUniqueViolation(err) {
		var exist model.Notification
		if err := s.db.WithContext(ctx).First(&exist, "order_id = ?", orderID).Error; err != nil {
			s.logger.Error("load existing notification", "order_id", orderID, "error", err)
			return nil, false, codes.Internal("Lỗi xảy ra trong quá trình tạo thông báo!")
		}
		return &exist, false, nil
	}
	if err != nil {
		s.logger.Error("create notification", "order_id", orderID, "error", err)
		return nil, false, codes.Internal("Lỗi xảy ra trong quá trình tạo thông báo!")
	}
	return n, true, nil
}

// CreateNotificationDetail 为某个账号写一条投递记录，初始未读。
func (s *NotificationService) CreateNotificationDetail(ctx context.Context, notificationID, accountID string) (*model.NotificationDetail, error) {
	d := &model.NotificationDetail{
		ID:             uuid.NewString(),
		NotificationID: notificationID,
		AccountID:      accountID,
		Status:         false,
	}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		s.logger.Error("create notification detail", "notification_id", notificationID, "account_id", accountID, "error", err)
		return nil, codes.Internal("Lỗi xảy ra trong quá trình tạo thông báo cho người dùng!")
	}
	return d, nil
}

// FanOut 是消费者入口：生成通知并为每个在职账号投递一条记录。
// 重复消息在通知已存在时直接返回，不会重复投递。
func (s *NotificationService) FanOut(ctx context.Context, orderID, fullName string) error {
	n, created, err := s.CreateNotification(ctx, orderID, fullName)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	var staff []model.Account
	if err := s.db.WithContext(ctx).
		Where("status = ?", model.AccountActive).
		Find(&staff).Error; err != nil {
		s.logger.Error("list staff accounts", "error", err)
		return codes.Internal("Lỗi xảy ra trong quá trình tạo thông báo cho người dùng!")
	}

	for _, acc := range staff {
		if _, err := s.CreateNotificationDetail(ctx, n.ID, acc.ID); err != nil {
			return err
		}
	}
	return nil
}

// ListForAccount 某账号的通知收件箱，按投递时间分页。
func (s *NotificationService) ListForAccount(ctx context.Context, accountID string, q ListQuery) (*Paged[NotificationView], error) {
	q, sortColumn := q.normalize(notificationSortColumns, "created_at")

	var rows []NotificationView
	err := s.db.WithContext(ctx).Table("notification_details AS nd").
		Select(`nd.id AS detail_id, nd.notification_id, n.order_id, n.message,
			nd.status, nd.created_at`).
		Joins("JOIN notifications n ON n.id = nd.notification_id").
		Where("nd.account_id = ?", accountID).
		Order(sortColumn + " " + q.SortOrder).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Scan(&rows).Error
	if err != nil {
		s.logger.Error("list notifications", "account_id", accountID, "error", err)
		return nil, codes.Internal("Lỗi xảy ra trong quá trình lấy thông báo!")
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.NotificationDetail{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		s.logger.Error("count notifications", "account_id", accountID, "error", err)
		return nil, codes.Internal("Lỗi xảy ra trong quá trình lấy thông báo!")
	}

	return newPaged(rows, total, q.Page, q.Limit), nil
}

// MarkRead 将一条投递记录标记为已读。
func (s *NotificationService) MarkRead(ctx context.Context, detailID string) error {
	var detail model.NotificationDetail
	err := s.db.WithContext(ctx).First(&detail, "id = ?", detailID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return codes.New(codes.EntityNotExist, "Không tìm thấy thông báo")
	}
	if err != nil {
		s.logger.Error("load notification detail", "id", detailID, "error", err)
		return codes.Internal("Lỗi xảy ra trong quá trình cập nhật thông báo!")
	}

	if err := s.db.WithContext(ctx).Model(&model.NotificationDetail{}).
		Where("id = ?", detailID).
		Update("status", true).Error; err != nil {
		s.logger.Error("mark notification read", "id", detailID, "error", err)
		return codes.Internal("Lỗi xảy ra trong quá trình cập nhật thông báo!")
	}
	return nil
}
