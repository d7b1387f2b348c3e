package cmd

import (
	"log/slog"

	"resale/internal/adapters/out/postgres"
	"resale/internal/core/application/usecases/commands"
	"resale/internal/core/application/usecases/queries"
	"resale/internal/core/ports"
	"resale/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   commands.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) CompositionRoot {
	uowFactory := *postgres.NewGormUnitOfWorkFactory(gormDB)

	var notificationUoWFactory commands.NotificationUoWFactory = FuncNotificationUoWFactory(
		func() commands.NotificationUoW {
			return uowFactory.Create()
		})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		notifier:   commands.NewNotificationEmitter(notificationUoWFactory, publisher, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreatePurchaseCommandHandler() commands.CreatePurchaseCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePurchaseCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	var f commands.ChatUoWFactory = FuncChatUoWFactory(func() commands.ChatUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendMessageCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateFetchConversationCommandHandler() commands.FetchConversationCommandHandler {
	var f commands.ChatUoWFactory = FuncChatUoWFactory(func() commands.ChatUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFetchConversationCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByListingQueryHandler() queries.GetOrderByListingQueryHandler {
	return queries.NewGetOrderByListingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusCountsQueryHandler() queries.GetOrderStatusCountsQueryHandler {
	return queries.NewGetOrderStatusCountsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderStatsJob() *jobs.OrderStatsJob {
	return jobs.NewOrderStatsJob(c.CreateGetOrderStatusCountsQueryHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncChatUoWFactory func() commands.ChatUoW

func (f FuncChatUoWFactory) Create() commands.ChatUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
