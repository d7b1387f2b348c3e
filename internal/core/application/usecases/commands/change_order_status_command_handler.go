package commands

import (
	"context"
	"errors"

	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/errs"
	"resale/internal/pkg/monitoring"
)

// ChangeOrderStatusResult reports the outcome of a status change command.
type ChangeOrderStatusResult struct {
	// Status is the order's status after the change.
	Status order.Status

	// Degraded is true when the change committed but the counterpart's
	// notification could not be fully delivered.
	Degraded bool
}

// ChangeOrderStatusCommandHandler handles the business logic for order
// status changes. The aggregate enforces the permission matrix and
// transition reachability; the repository write uses compare-and-set against
// the status the checks were evaluated on, so two racing writers never both
// win.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier)
//	cmd, _ := NewChangeOrderStatusCommand(orderNumber, sellerID, order.Processing)
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConcurrencyConflict) {
//	    // Another party changed the order first; client should refetch.
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewChangeOrderStatusCommandHandler creates a handler for status change
// operations. Requires an OrderUoWFactory for transactional persistence and
// a Notifier for the post-commit counterpart notification.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change command.
//
// The rule chain runs in a fixed order so the caller always sees the most
// specific failure: membership and role violations surface as access denied
// before reachability is ever consulted, and the compare-and-set write turns
// lost races into concurrency conflicts instead of silent double
// transitions. The notification is emitted only after commit; its failure
// degrades the result but never the state change.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetByOrderNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	previous := aggregate.Status()

	if err = aggregate.ChangeStatus(cmd.RequesterID(), cmd.Target()); err != nil {
		recordRejection(err)
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
		recordRejection(err)
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	monitoring.RecordTransition(aggregate.Status().String())

	delivered := h.notifier.NotifyStatusChange(ctx, aggregate, cmd.RequesterID(), aggregate.Status())

	return ChangeOrderStatusResult{
		Status:   aggregate.Status(),
		Degraded: !delivered,
	}, nil
}

// recordRejection maps a rejection error to its metrics reason label.
func recordRejection(err error) {
	switch {
	case errors.Is(err, errs.ErrAccessDenied):
		monitoring.RecordRejection(monitoring.ReasonForbidden)
	case errors.Is(err, errs.ErrInvalidTransition):
		monitoring.RecordRejection(monitoring.ReasonInvalidTransition)
	case errors.Is(err, errs.ErrConcurrencyConflict):
		monitoring.RecordRejection(monitoring.ReasonConflict)
	}
}
