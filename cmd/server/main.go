package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shop_backoffice/internal/config"
	"shop_backoffice/internal/model"
	"shop_backoffice/internal/queue"
	"shop_backoffice/internal/router"
	"shop_backoffice/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Account{},
		&model.Category{},
		&model.Product{},
		&model.PriceDetail{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Notification{},
		&model.NotificationDetail{},
		&model.Image{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	rdb := rd.NewClient(&rd.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	files := service.NewFileService(db, cfg.MaxUploadBytes, logger)
	products := service.NewProductService(db, files, logger)
	categories := service.NewCategoryService(db, logger)
	orders := service.NewOrderService(db, products, rdb, cfg.OrderEventStream, logger)
	accounts := service.NewAccountService(db, logger)
	notifications := service.NewNotificationService(db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 下单事件链路：outbox stream → Kafka → 员工通知
	producer := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	relay := queue.NewRelay(rdb, producer, logger,
		cfg.OrderEventStream, cfg.OrderEventGroup, cfg.OrderEventConsumer)
	go relay.Run(ctx)

	consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, notifications, logger)
	defer consumer.Close()
	go consumer.Run(ctx)

	r := gin.Default()
	router.Setup(r, router.Services{
		Products:      products,
		Categories:    categories,
		Orders:        orders,
		Accounts:      accounts,
		Notifications: notifications,
		Files:         files,
	}, rdb, cfg)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("http serve: %v", err)
	}
}
