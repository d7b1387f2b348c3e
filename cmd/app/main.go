package main

import (
	"fmt"
	"log/slog"
	"os"

	"resale/cmd"
	adapterhttp "resale/internal/adapters/in/http"
	"resale/internal/adapters/out/postgres/messagerepo"
	"resale/internal/adapters/out/postgres/notificationrepo"
	"resale/internal/adapters/out/postgres/orderrepo"
	"resale/internal/adapters/out/rabbit"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	config := getConfigs(logger)

	db := mustOpenDatabase(config, logger)

	publisher, err := rabbit.NewAmqpNotificationPublisher(config.RabbitURL, config.NotificationQueue)
	if err != nil {
		logger.Error("Failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer func() { _ = publisher.Close() }()

	root := cmd.NewCompositionRoot(config, db, publisher, logger)

	statsJob := root.CreateOrderStatsJob()
	if err = statsJob.Start(); err != nil {
		logger.Error("Failed to start order stats job", "error", err)
		os.Exit(1)
	}
	defer statsJob.Stop()

	startWebServer(&root, config)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		Environment:       os.Getenv("ENVIRONMENT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RabbitURL:         os.Getenv("RABBITMQ_URL"),
		NotificationQueue: os.Getenv("NOTIFICATION_QUEUE"),
	}
}

func mustOpenDatabase(config cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&messagerepo.MessageDTO{},
		&notificationrepo.NotificationDTO{},
	); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, config cmd.Config) {
	e := echo.New()
	e.Use(middleware.Recover())

	server := adapterhttp.NewServer(
		root.CreateCreatePurchaseCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateSendMessageCommandHandler(),
		root.CreateFetchConversationCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrderByListingQueryHandler(),
		config.Environment,
	)
	server.RegisterRoutes(e, adapterhttp.NewAuthMiddleware([]byte(config.JWTSecret)))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}
