package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/metrics"
	"app/internal/notification"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .envはあれば読む（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := newLogger(cfg)

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.FoodItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	foodRepo := infraRepo.NewFoodItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)

	//通知・metrics
	mailer := notification.NewMailerFromConfig(cfg, log)
	sink := metrics.NewInMemorySink()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(), mailer, log)
	foodUC := usecase.NewFoodUsecase(foodRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, foodRepo, mailer, log, cfg.NotifyTimeout)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, userRepo, log)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(cfg, authUC),
		Food:       handler.NewFoodHandler(cfg, foodUC),
		Order:      handler.NewOrderHandler(cfg, orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC, sink),
	}

	//Server起動
	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("starting server")

	if err := server.Start(addr, cfg, log, sink, handlers); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()

	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
