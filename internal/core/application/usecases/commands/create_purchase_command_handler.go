package commands

import (
	"context"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/monitoring"
)

// CreatePurchaseResult reports the outcome of a purchase command.
type CreatePurchaseResult struct {
	// OrderNumber is the external identity of the created order.
	OrderNumber kernel.OrderNumber

	// Degraded is true when the order was created but the seller's
	// TICKET_REQUEST notification could not be fully delivered.
	Degraded bool
}

// CreatePurchaseCommandHandler handles the business logic for purchase
// creation: it snapshots the listing's ticket details onto a new order in
// PENDING status, then notifies the seller that ticketing should start.
//
// Example:
//
//	handler := NewCreatePurchaseCommandHandler(uowFactory, notifier)
//	cmd, _ := NewCreatePurchaseCommand(buyerID, sellerID, listingID,
//	    "Hamilton", "", eventAt, price, 2)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("purchase failed: %w", err)
//	}
//	// result.OrderNumber identifies the new order
type CreatePurchaseCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewCreatePurchaseCommandHandler creates a handler for purchase operations.
// Requires an OrderUoWFactory for transactional persistence and a Notifier
// for the post-commit seller notification.
func NewCreatePurchaseCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) CreatePurchaseCommandHandler {
	return CreatePurchaseCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the purchase command. The order write commits first; the
// seller notification is emitted afterwards and its failure only degrades
// the result.
func (h *CreatePurchaseCommandHandler) Handle(ctx context.Context, cmd CreatePurchaseCommand) (CreatePurchaseResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePurchaseResult{}, err
	}

	ticket, err := order.NewTicketSnapshot(cmd.Title(), cmd.Venue(), cmd.EventAt(), cmd.Price(), cmd.Quantity())
	if err != nil {
		return CreatePurchaseResult{}, err
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(),
		cmd.BuyerID(), cmd.SellerID(), cmd.ListingID(), ticket)
	if err != nil {
		return CreatePurchaseResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreatePurchaseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreatePurchaseResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatePurchaseResult{}, err
	}

	monitoring.RecordTransition(aggregate.Status().String())

	delivered := h.notifier.NotifyPurchaseCreated(ctx, aggregate)

	return CreatePurchaseResult{
		OrderNumber: aggregate.OrderNumber(),
		Degraded:    !delivered,
	}, nil
}
