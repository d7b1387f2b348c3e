// Package http exposes the order lifecycle engine over a JSON REST API.
// Handlers translate between the wire format and application use cases;
// business rules stay in the core.
//
// All responses carry a success flag. Error responses map the core error
// taxonomy onto HTTP status codes:
//
//	validation errors      -> 400
//	missing principal      -> 401
//	access denied          -> 403
//	unknown object         -> 404
//	invalid transition     -> 409 (code INVALID_TRANSITION)
//	concurrency conflict   -> 409 (code CONFLICT)
package http

import (
	"errors"
	"net/http"
	"time"

	"resale/internal/core/application/usecases/commands"
	"resale/internal/core/application/usecases/queries"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"
	"resale/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const envProduction = "production"

// Server implements the HTTP handlers for the order lifecycle API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createPurchaseHandler    commands.CreatePurchaseCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	sendMessageHandler       commands.SendMessageCommandHandler
	fetchConversationHandler commands.FetchConversationCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrderByListingHandler queries.GetOrderByListingQueryHandler

	environment string
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The environment controls whether internal error detail is
// exposed in responses.
func NewServer(
	createPurchaseHandler commands.CreatePurchaseCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	sendMessageHandler commands.SendMessageCommandHandler,
	fetchConversationHandler commands.FetchConversationCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderByListingHandler queries.GetOrderByListingQueryHandler,
	environment string,
) *Server {
	return &Server{
		createPurchaseHandler:    createPurchaseHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		sendMessageHandler:       sendMessageHandler,
		fetchConversationHandler: fetchConversationHandler,
		getOrderHandler:          getOrderHandler,
		getOrderByListingHandler: getOrderByListingHandler,
		environment:              environment,
	}
}

// RegisterRoutes mounts the API under /api/v1. All routes except /health
// require an authenticated principal.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1")
	api.GET("/health", s.GetHealth)

	protected := api.Group("", auth)
	protected.POST("/orders", s.CreatePurchase)
	protected.GET("/order/:orderNumber", s.GetOrder)
	protected.GET("/order/by-listing/:listingId", s.GetOrderByListing)
	protected.PATCH("/order/:orderNumber/status", s.ChangeOrderStatus)
	protected.GET("/messages", s.GetMessages)
	protected.POST("/messages", s.SendMessage)
}

// CreatePurchaseRequest is the POST /api/v1/orders request body. The buyer
// is always the authenticated caller and is never taken from the body.
type CreatePurchaseRequest struct {
	SellerID  string    `json:"sellerId"`
	ListingID string    `json:"listingId"`
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	EventAt   time.Time `json:"eventAt"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
}

// CreatePurchaseResponse is the POST /api/v1/orders response body.
type CreatePurchaseResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
	Degraded    bool   `json:"degraded,omitempty"`
}

// CreatePurchase handles POST /api/v1/orders - purchases a listing.
func (s *Server) CreatePurchase(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.handleError(ctx, err)
	}

	var request CreatePurchaseRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	sellerID, err := kernel.UserIDFromString(request.SellerID)
	if err != nil {
		return s.handleError(ctx, err)
	}

	listingID, err := kernel.ListingIDFromString(request.ListingID)
	if err != nil {
		return s.handleError(ctx, err)
	}

	price, err := decimal.NewFromString(request.Price)
	if err != nil {
		return s.badRequest(ctx, "Invalid price: "+request.Price)
	}

	cmd, err := commands.NewCreatePurchaseCommand(principal, sellerID, listingID,
		request.Title, request.Venue, request.EventAt, price, request.Quantity)
	if err != nil {
		return s.handleError(ctx, err)
	}

	result, err := s.createPurchaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatePurchaseResponse{
		Success:     true,
		OrderNumber: result.OrderNumber.String(),
		Degraded:    result.Degraded,
	})
}

// OrderResponse is the GET /api/v1/order/:orderNumber response body.
// UserRole tells the caller which side of the order they are on.
type OrderResponse struct {
	Success     bool          `json:"success"`
	OrderNumber string        `json:"orderNumber"`
	ListingID   string        `json:"listingId"`
	BuyerID     kernel.UserID `json:"buyerId"`
	SellerID    kernel.UserID `json:"sellerId"`
	Status      string        `json:"status"`
	UserRole    string        `json:"userRole"`
	Title       string        `json:"title"`
	Venue       string        `json:"venue"`
	EventAt     time.Time     `json:"eventAt"`
	Price       string        `json:"price"`
	Quantity    int           `json:"quantity"`
	TotalPrice  string        `json:"totalPrice"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// GetOrder handles GET /api/v1/order/:orderNumber - retrieves an order's
// detail view for one of its parties.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.handleError(ctx, err)
	}

	orderNumber, err := kernel.OrderNumberFromString(ctx.Param("orderNumber"))
	if err != nil {
		return s.handleError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderNumber, principal)
	if err != nil {
		return s.handleError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		Success:     true,
		OrderNumber: view.OrderNumber.String(),
		ListingID:   view.ListingID.String(),
		BuyerID:     view.BuyerID,
		SellerID:    view.SellerID,
		Status:      view.Status,
		UserRole:    view.Role,
		Title:       view.Title,
		Venue:       view.Venue,
		EventAt:     view.EventAt,
		Price:       view.Price.String(),
		Quantity:    view.Quantity,
		TotalPrice:  view.TotalPrice.String(),
		CreatedAt:   view.CreatedAt,
	})
}

// OrderByListingResponse is the GET /api/v1/order/by-listing/:listingId
// response body. A listing without an order answers success=false with
// status 200; absence is an expected outcome for this lookup.
type OrderByListingResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Status      string `json:"status,omitempty"`
	UserRole    string `json:"userRole,omitempty"`
}

// GetOrderByListing handles GET /api/v1/order/by-listing/:listingId -
// resolves a legacy listing id to its order.
func (s *Server) GetOrderByListing(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.handleError(ctx, err)
	}

	listingID, err := kernel.ListingIDFromString(ctx.Param("listingId"))
	if err != nil {
		return s.handleError(ctx, err)
	}

	query, err := queries.NewGetOrderByListingQuery(listingID, principal)
	if err != nil {
		return s.handleError(ctx, err)
	}

	view, err := s.getOrderByListingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.handleError(ctx, err)
	}

	if !view.Found {
		return ctx.JSON(http.StatusOK, OrderByListingResponse{Success: false})
	}

	return ctx.JSON(http.StatusOK, OrderByListingResponse{
		Success:     true,
		OrderNumber: view.OrderNumber.String(),
		Status:      view.Status,
		UserRole:    view.Role,
	})
}

// ChangeOrderStatusRequest is the PATCH /api/v1/order/:orderNumber/status
// request body.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatusResponse is the status change response body.
type ChangeOrderStatusResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Degraded bool   `json:"degraded,omitempty"`
}

// ChangeOrderStatus handles PATCH /api/v1/order/:orderNumber/status -
// requests a lifecycle transition on behalf of the authenticated party.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.handleError(ctx, err)
	}

	orderNumber, err := kernel.OrderNumberFromString(ctx.Param("orderNumber"))
	if err != nil {
		return s.handleError(ctx, err)
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.handleError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderNumber, principal, target)
	if err != nil {
		return s.handleError(ctx, err)
	}

	result, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ChangeOrderStatusResponse{
		Success:  true,
		Status:   result.Status.String(),
		Degraded: result.Degraded,
	})
}

// MessageView is one chat message in a conversation response.
type MessageView struct {
	ID         string        `json:"id"`
	SenderID   kernel.UserID `json:"senderId"`
	ReceiverID kernel.UserID `json:"receiverId"`
	Message    string        `json:"message"`
	IsRead     bool          `json:"isRead"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// ConversationResponse is the GET /api/v1/messages response body.
type ConversationResponse struct {
	Success  bool          `json:"success"`
	Messages []MessageView `json:"messages"`
}

// GetMessages handles GET /api/v1/messages?orderNumber= - fetches an
// order's conversation oldest first. Fetching marks the caller's unread
// incoming messages as read.
func (s *Server) GetMessages(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.handleError(ctx, err)
	}

	orderNumber, err := kernel.OrderNumberFromString(ctx.QueryParam("orderNumber"))
	if err != nil {
		return s.handleError(ctx, err)
	}

	cmd, err := commands.NewFetchConversationCommand(orderNumber, principal)
	if err != nil {
		return s.handleError(ctx, err)
	}

	messages, err := s.fetchConversationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	views := make([]MessageView, len(messages))
	for i, message := range messages {
		views[i] = MessageView{
			ID:         message.ID().String(),
			SenderID:   message.SenderID(),
			ReceiverID: message.ReceiverID(),
			Message:    message.Body(),
			IsRead:     message.IsRead(),
			CreatedAt:  message.CreatedAt(),
		}
	}

	return ctx.JSON(http.StatusOK, ConversationResponse{
		Success:  true,
		Messages: views,
	})
}

// SendMessageRequest is the POST /api/v1/messages request body.
type SendMessageRequest struct {
	ReceiverID  string `json:"receiverId"`
	Message     string `json:"message"`
	OrderNumber string `json:"orderNumber"`
}

// SendMessageResponse is the POST /api/v1/messages response body.
type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Degraded  bool   `json:"degraded,omitempty"`
}

// SendMessage handles POST /api/v1/messages - posts a message into an
// order's conversation.
func (s *Server) SendMessage(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.handleError(ctx, err)
	}

	var request SendMessageRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	receiverID, err := kernel.UserIDFromString(request.ReceiverID)
	if err != nil {
		return s.handleError(ctx, err)
	}

	orderNumber, err := kernel.OrderNumberFromString(request.OrderNumber)
	if err != nil {
		return s.handleError(ctx, err)
	}

	cmd, err := commands.NewSendMessageCommand(orderNumber, principal, receiverID, request.Message)
	if err != nil {
		return s.handleError(ctx, err)
	}

	result, err := s.sendMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SendMessageResponse{
		Success:   true,
		MessageID: result.MessageID.String(),
		Degraded:  result.Degraded,
	})
}

// GetHealth handles GET /api/v1/health - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// ErrorResponse is the common error body. Code distinguishes the two 409
// causes; Detail carries the internal error text outside production.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// handleError maps core errors onto HTTP responses.
func (s *Server) handleError(ctx echo.Context, err error) error {
	response := ErrorResponse{Message: "Internal server error"}
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		response.Message = "Invalid request"
	case errors.Is(err, errUnauthenticated):
		status = http.StatusUnauthorized
		response.Message = "Authentication required"
	case errors.Is(err, errs.ErrAccessDenied):
		status = http.StatusForbidden
		response.Message = "Access denied"
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		response.Message = "Not found"
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
		response.Message = "Invalid status transition"
		response.Code = "INVALID_TRANSITION"
	case errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
		response.Message = "Order was modified concurrently, retry the request"
		response.Code = "CONFLICT"
	}

	if s.environment != envProduction {
		response.Detail = err.Error()
	}

	return ctx.JSON(status, response)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}
