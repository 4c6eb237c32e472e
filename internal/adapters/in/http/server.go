// Package http exposes the order use cases over a REST surface. Handlers
// translate requests into commands and queries; all policy decisions live
// in the core.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	updateLocationHandler    commands.UpdateLocationCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	// Query handlers
	listOrdersHandler            queries.ListOrdersQueryHandler
	getOrderHandler              queries.GetOrderQueryHandler
	getOrderStatsHandler         queries.GetOrderStatsQueryHandler
	listDeliveryPersonnelHandler queries.ListDeliveryPersonnelQueryHandler

	// requestTimeout bounds mutating requests. A transition is a single
	// guarded UPDATE inside a transaction, so an expired deadline never
	// leaves partial state behind.
	requestTimeout time.Duration
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderStatsHandler queries.GetOrderStatsQueryHandler,
	listDeliveryPersonnelHandler queries.ListDeliveryPersonnelQueryHandler,
	requestTimeout time.Duration,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		assignOrderHandler:           assignOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		updateLocationHandler:        updateLocationHandler,
		cancelOrderHandler:           cancelOrderHandler,
		listOrdersHandler:            listOrdersHandler,
		getOrderHandler:              getOrderHandler,
		getOrderStatsHandler:         getOrderStatsHandler,
		listDeliveryPersonnelHandler: listDeliveryPersonnelHandler,
		requestTimeout:               requestTimeout,
	}
}

// RegisterRoutes mounts the REST surface under /api/v1 behind the given
// auth middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	group := e.Group("/api/v1/orders", auth)

	group.POST("", s.CreateOrder)
	group.GET("", s.ListOrders)
	group.GET("/stats/overview", s.GetOrderStats)
	group.GET("/:id", s.GetOrder)
	group.PUT("/:id/assign", s.AssignOrder)
	group.PUT("/:id/status", s.UpdateOrderStatus)
	group.PUT("/:id/location", s.UpdateLocation)
	group.PUT("/:id/cancel", s.CancelOrder)

	users := e.Group("/api/v1/users", auth)
	users.GET("/delivery-personnel", s.ListDeliveryPersonnel)
}

type coordsRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r *coordsRequest) toGeoPoint() (*kernel.GeoPoint, error) {
	if r == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(r.Lat, r.Lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	var body struct {
		PickupAddress   string         `json:"pickupAddress"`
		DropAddress     string         `json:"dropAddress"`
		ItemDescription string         `json:"itemDescription"`
		PickupCoords    *coordsRequest `json:"pickupCoords"`
		DropCoords      *coordsRequest `json:"dropCoords"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	pickupCoords, err := body.PickupCoords.toGeoPoint()
	if err != nil {
		return respondError(ctx, err)
	}
	dropCoords, err := body.DropCoords.toGeoPoint()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		actor,
		kernel.NewUUID(),
		body.PickupAddress,
		body.DropAddress,
		body.ItemDescription,
		pickupCoords,
		dropCoords,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	reqCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	created, err := s.createOrderHandler.Handle(reqCtx, cmd)
	if err != nil {
		return respondError(ctx, asTimeout(err, "create order"))
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Order created successfully",
		"order":   presentOrder(created),
	})
}

// ListOrders handles GET /api/v1/orders - lists orders visible to the
// caller, optionally filtered by status.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		statusFilter = &status
	}

	page, err := intQueryParam(ctx, "page")
	if err != nil {
		return respondError(ctx, err)
	}
	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(actor, statusFilter, page, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"order": found})
}

// GetOrderStats handles GET /api/v1/orders/stats/overview - returns order
// counts grouped by status, scoped to the caller.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	query, err := queries.NewGetOrderStatsQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"stats": stats})
}

// ListDeliveryPersonnel handles GET /api/v1/users/delivery-personnel -
// lists the courier roster for admins.
func (s *Server) ListDeliveryPersonnel(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	query, err := queries.NewListDeliveryPersonnelQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	personnel, err := s.listDeliveryPersonnelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"deliveryPersonnel": personnel})
}

// AssignOrder handles PUT /api/v1/orders/:id/assign - assigns a delivery
// person to a pending order.
func (s *Server) AssignOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body struct {
		DeliveryPersonID string `json:"deliveryPersonId"`
		Notes            string `json:"notes"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	deliveryPersonID, err := kernel.UUIDFromString(body.DeliveryPersonID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("deliveryPersonId", err))
	}

	cmd, err := commands.NewAssignOrderCommand(actor, orderID, deliveryPersonID, body.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	reqCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	assigned, err := s.assignOrderHandler.Handle(reqCtx, cmd)
	if err != nil {
		return respondError(ctx, asTimeout(err, "assign order"))
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Order assigned successfully",
		"order":   presentOrder(assigned),
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - advances the
// order along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	newStatus, err := order.ParseStatus(body.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actor, orderID, newStatus, body.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	reqCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	updated, err := s.updateOrderStatusHandler.Handle(reqCtx, cmd)
	if err != nil {
		return respondError(ctx, asTimeout(err, "update order status"))
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Order status updated successfully",
		"order":   presentOrder(updated),
	})
}

// UpdateLocation handles PUT /api/v1/orders/:id/location - records the
// courier's current position for an active order.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body coordsRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	position, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(actor, orderID, position)
	if err != nil {
		return respondError(ctx, err)
	}

	reqCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	if err := s.updateLocationHandler.Handle(reqCtx, cmd); err != nil {
		return respondError(ctx, asTimeout(err, "update location"))
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Location updated successfully"})
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel - cancels a pending
// order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return respondError(ctx, errs.NewAuthError("missing actor"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
	}

	cmd, err := commands.NewCancelOrderCommand(actor, orderID, body.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	reqCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	cancelled, err := s.cancelOrderHandler.Handle(reqCtx, cmd)
	if err != nil {
		return respondError(ctx, asTimeout(err, "cancel order"))
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "Order cancelled successfully",
		"order":   presentOrder(cancelled),
	})
}

func (s *Server) mutationContext(ctx echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), s.requestTimeout)
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return orderID, nil
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
