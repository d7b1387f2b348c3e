package commands_test

import (
	"errors"
	"testing"

	"resale/internal/core/application/usecases/commands"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statusChangeCommand(t *testing.T, requester kernel.UserID, target order.Status) commands.ChangeOrderStatusCommand {
	t.Helper()

	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.OrderNumber("ORD-123456789012"), requester, target)
	require.NoError(t, err)

	return cmd
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := statusChangeCommand(t, sellerID, order.Processing)
	stored := newStoredOrder(t, order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(stored, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, stored, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyStatusChange", mock.Anything, stored, sellerID, order.Processing).
		Return(true).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Processing, result.Status)
	require.False(t, result.Degraded)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_AccessDenied(t *testing.T) {
	ctx := t.Context()

	tests := map[string]struct {
		requester kernel.UserID
		current   order.Status
		target    order.Status
	}{
		"outsider":              {otherID, order.Pending, order.Cancelled},
		"buyer starting":        {buyerID, order.Pending, order.Processing},
		"buyer completing":      {buyerID, order.Processing, order.Completed},
		"seller confirming":     {sellerID, order.Completed, order.Confirmed},
		"seller confirm early":  {sellerID, order.Pending, order.Confirmed},
		"seller confirm closed": {sellerID, order.Cancelled, order.Confirmed},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := statusChangeCommand(t, tc.requester, tc.target)
			stored := newStoredOrder(t, tc.current)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(stored, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			notifier := new(MockNotifier)

			h := commands.NewChangeOrderStatusCommandHandler(factory, notifier)
			_, err := h.Handle(ctx, cmd)
			require.ErrorIs(t, err, errs.ErrAccessDenied)
			require.Equal(t, tc.current, stored.Status())
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			notifier.AssertNotCalled(t, "NotifyStatusChange",
				mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	tests := map[string]struct {
		requester kernel.UserID
		current   order.Status
		target    order.Status
	}{
		"skip to completed":     {sellerID, order.Pending, order.Completed},
		"confirm too early":     {buyerID, order.Processing, order.Confirmed},
		"back to processing":    {sellerID, order.Completed, order.Processing},
		"cancel confirmed":      {buyerID, order.Confirmed, order.Cancelled},
		"cancel cancelled":      {sellerID, order.Cancelled, order.Cancelled},
		"re-apply current":      {sellerID, order.Processing, order.Processing},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := statusChangeCommand(t, tc.requester, tc.target)
			stored := newStoredOrder(t, tc.current)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(stored, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier))
			_, err := h.Handle(ctx, cmd)
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			require.Equal(t, tc.current, stored.Status())
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()
	cmd := statusChangeCommand(t, buyerID, order.Cancelled)
	stored := newStoredOrder(t, order.Processing)

	conflict := errs.NewConcurrencyConflictError("order", stored.OrderNumber().String())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(stored, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, stored, order.Processing).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	notifier.AssertNotCalled(t, "NotifyStatusChange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd := statusChangeCommand(t, sellerID, order.Processing)

	notFound := errs.NewObjectNotFoundError("orderNumber", cmd.OrderNumber().String())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(nil, notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_Handle_DegradedNotification(t *testing.T) {
	ctx := t.Context()
	cmd := statusChangeCommand(t, buyerID, order.Confirmed)
	stored := newStoredOrder(t, order.Completed)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(stored, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, stored, order.Completed).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyStatusChange", mock.Anything, stored, buyerID, order.Confirmed).
		Return(false).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Confirmed, result.Status)
	require.True(t, result.Degraded)
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ChangeOrderStatusCommand{} // not constructed properly

	h := commands.NewChangeOrderStatusCommandHandler(new(MockOrderUoWFactory), new(MockNotifier))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
}

func TestChangeOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := statusChangeCommand(t, sellerID, order.Processing)
	stored := newStoredOrder(t, order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByOrderNumber", mock.Anything, cmd.OrderNumber()).Return(stored, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, stored, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "NotifyStatusChange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
