package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shop_backoffice/internal/codes"
	"shop_backoffice/internal/model"
	rediskey "shop_backoffice/pkg/redis"
)

// OrderService 顾客下单与订单查询。
type OrderService struct {
	db       *gorm.DB
	products *ProductService
	rdb      *rd.Client
	stream   string
	logger   *slog.Logger
}

// rdb 允许为 nil（测试或未接通知链路时），此时跳过 outbox 写入。
func NewOrderService(db *gorm.DB, products *ProductService, rdb *rd.Client, stream string, logger *slog.Logger) *OrderService {
	return &OrderService{db: db, products: products, rdb: rdb, stream: stream, logger: logger}
}

// OrderItemInput 下单的一行。
type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

// OrderView 订单头 + 订单行。
type OrderView struct {
	model.Order
	Items []model.OrderDetail `json:"items"`
}

// Create 顾客下单：
// 1. 校验每行商品存在、已有生效价、库存足够
// 2. 扣库存、加销量，写订单头与订单行（同一事务）
// 3. 事务提交后把下单事件写入 outbox stream，通知链路异步消费
func (s *OrderService) Create(ctx context.Context, fullName string, items []OrderItemInput) (*OrderView, error) {
	if fullName == "" {
		return nil, codes.New(codes.Error, "Thiếu tên khách hàng!")
	}
	if len(items) == 0 {
		return nil, codes.New(codes.Error, "Đơn hàng không có sản phẩm!")
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, codes.New(codes.Error, "Số lượng sản phẩm không hợp lệ!")
		}
	}

	now := time.Now()
	order := &model.Order{
		ID:       uuid.NewString(),
		FullName: fullName,
	}
	var details []model.OrderDetail

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var amount int64
		for _, it := range items {
			var product model.Product
			err := tx.First(&product, "id = ?", it.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return codes.New(codes.EntityNotExist, "Không tìm thấy sản phẩm")
			}
			if err != nil {
				return err
			}
			if product.Quantity < it.Quantity {
				return codes.New(codes.Error, fmt.Sprintf("Sản phẩm %s không đủ hàng!", product.Name))
			}

			price, err := s.products.currentPrice(ctx, tx, product.ID, now)
			if err != nil {
				return err
			}
			if price == nil {
				return codes.New(codes.Error, fmt.Sprintf("Sản phẩm %s chưa được áp giá!", product.Name))
			}

			if err := tx.Model(&model.Product{}).
				Where("id = ?", product.ID).
				Updates(map[string]any{
					"quantity": gorm.Expr("quantity - ?", it.Quantity),
					"sold":     gorm.Expr("sold + ?", it.Quantity),
				}).Error; err != nil {
				return err
			}

			details = append(details, model.OrderDetail{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  it.Quantity,
				Price:     price.NewPrice,
			})
			amount += price.NewPrice * it.Quantity
		}

		order.Amount = amount
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		var de *codes.DomainError
		if errors.As(err, &de) {
			return nil, de
		}
		s.logger.Error("create order", "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình tạo đơn hàng")
	}

	// 通知是尽力而为：outbox 写失败只记日志，不影响已成交的订单。
	if s.rdb != nil {
		if err := rediskey.AppendOrderEvent(ctx, s.rdb, s.stream, order.ID, fullName); err != nil {
			s.logger.Error("append order event", "order_id", order.ID, "error", err)
		}
	}

	return &OrderView{Order: *order, Items: details}, nil
}

// Get 按 ID 查询订单及其订单行。
func (s *OrderService) Get(ctx context.Context, orderID string) (*OrderView, error) {
	var order model.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, codes.New(codes.EntityNotExist, "Không tìm thấy đơn hàng")
	}
	if err != nil {
		s.logger.Error("get order", "id", orderID, "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy đơn hàng")
	}

	var details []model.OrderDetail
	if err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&details).Error; err != nil {
		s.logger.Error("get order details", "id", orderID, "error", err)
		return nil, codes.Internal("Có lỗi xảy ra trong quá trình lấy đơn hàng")
	}

	return &OrderView{Order: order, Items: details}, nil
}
