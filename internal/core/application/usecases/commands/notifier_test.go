package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"resale/internal/core/application/usecases/commands"
	"resale/internal/core/domain/model/chat"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/notification"
	"resale/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func emitterFixture(repoErr, publishErr error) (*commands.NotificationEmitter, *MockNotificationRepository, *MockNotificationPublisher) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Return(repoErr).Maybe()

	uow := new(MockNotificationUoW)
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("NotificationRepository").Return(repo).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Maybe()

	publisher := new(MockNotificationPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Return(publishErr).Maybe()

	return commands.NewNotificationEmitter(factory, publisher, discardLogger()), repo, publisher
}

func TestNotificationEmitter_NotifyPurchaseCreated(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Pending)

	t.Run("stores and publishes the seller notification", func(t *testing.T) {
		emitter, repo, publisher := emitterFixture(nil, nil)

		require.True(t, emitter.NotifyPurchaseCreated(ctx, stored))

		added := repo.Calls[0].Arguments.Get(1).(*notification.Notification)
		require.Equal(t, notification.KindTicketRequest, added.Kind())
		require.Equal(t, sellerID, added.RecipientID())

		published := publisher.Calls[0].Arguments.Get(1).(*notification.Notification)
		require.Equal(t, added.ID(), published.ID())
	})

	t.Run("store failure degrades but still publishes", func(t *testing.T) {
		emitter, _, publisher := emitterFixture(errors.New("insert failed"), nil)

		require.False(t, emitter.NotifyPurchaseCreated(ctx, stored))
		publisher.AssertCalled(t, "Publish", mock.Anything, mock.AnythingOfType("*notification.Notification"))
	})

	t.Run("publish failure degrades but still stores", func(t *testing.T) {
		emitter, repo, _ := emitterFixture(nil, errors.New("broker down"))

		require.False(t, emitter.NotifyPurchaseCreated(ctx, stored))
		repo.AssertCalled(t, "Add", mock.Anything, mock.AnythingOfType("*notification.Notification"))
	})
}

func TestNotificationEmitter_NotifyStatusChange(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Processing)

	t.Run("addresses the counterpart of the initiator", func(t *testing.T) {
		emitter, repo, _ := emitterFixture(nil, nil)

		require.True(t, emitter.NotifyStatusChange(ctx, stored, sellerID, order.Processing))

		added := repo.Calls[0].Arguments.Get(1).(*notification.Notification)
		require.Equal(t, notification.KindPurchaseStatus, added.Kind())
		require.Equal(t, buyerID, added.RecipientID())
	})

	t.Run("compose failure reports degraded without side effects", func(t *testing.T) {
		emitter, repo, publisher := emitterFixture(nil, nil)

		require.False(t, emitter.NotifyStatusChange(ctx, stored, otherID, order.Cancelled))
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestNotificationEmitter_NotifyNewMessage(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Processing)

	t.Run("addresses the receiver with a short body verbatim", func(t *testing.T) {
		message, err := chat.NewMessage(kernel.NewUUID(), stored.OrderNumber(),
			buyerID, sellerID, "row F or G?")
		require.NoError(t, err)

		emitter, repo, _ := emitterFixture(nil, nil)

		require.True(t, emitter.NotifyNewMessage(ctx, stored, message))

		added := repo.Calls[0].Arguments.Get(1).(*notification.Notification)
		require.Equal(t, notification.KindMessage, added.Kind())
		require.Equal(t, sellerID, added.RecipientID())
		require.Equal(t, "row F or G?", added.Body())
	})

	t.Run("previews a long body instead of carrying it whole", func(t *testing.T) {
		message, err := chat.NewMessage(kernel.NewUUID(), stored.OrderNumber(),
			buyerID, sellerID, "are the seats together?")
		require.NoError(t, err)

		emitter, repo, _ := emitterFixture(nil, nil)

		require.True(t, emitter.NotifyNewMessage(ctx, stored, message))

		added := repo.Calls[0].Arguments.Get(1).(*notification.Notification)
		require.Equal(t, "are the seats togeth...", added.Body())
	})
}
