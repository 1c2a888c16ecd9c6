// Package http exposes the order engine and the back-office read models over
// a JSON API served by echo.
package http

import (
	"context"
	"net/http"
	"strconv"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type (
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (commands.UpdateOrderResult, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	GetActiveOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetActiveOrdersQuery) ([]queries.GetActiveOrdersQueryResponse, error)
	}

	GetTableLogsHandler interface {
		Handle(ctx context.Context, query queries.GetTableLogsQuery) ([]queries.GetTableLogsQueryResponse, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	updateOrderHandler UpdateOrderHandler

	getOrderHandler        GetOrderHandler
	getActiveOrdersHandler GetActiveOrdersHandler
	getTableLogsHandler    GetTableLogsHandler

	logger *zap.Logger
}

func NewServer(
	updateOrderHandler UpdateOrderHandler,
	getOrderHandler GetOrderHandler,
	getActiveOrdersHandler GetActiveOrdersHandler,
	getTableLogsHandler GetTableLogsHandler,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		updateOrderHandler:     updateOrderHandler,
		getOrderHandler:        getOrderHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		getTableLogsHandler:    getTableLogsHandler,
		logger:                 logger.Named("http"),
	}
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	who, ok := requesterFrom(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	in := commands.UpdateOrderInput{
		OrderID:       orderID,
		Status:        req.Status,
		Comments:      req.Comments,
		RequesterID:   who.ID,
		RequesterRole: who.Role,
	}
	if req.OrderTotal != nil {
		total := req.OrderTotal.String()
		in.OrderTotal = &total
	}
	for _, item := range req.UpdatedItems {
		in.Items = append(in.Items, commands.UpdateOrderItemInput{
			OrderItemID: item.OrderItemID,
			Source:      item.Source,
			Quantity:    item.Quantity,
			ItemTotal:   item.ItemTotal.String(),
		})
	}

	cmd, err := commands.NewUpdateOrderCommand(in)
	if err != nil {
		return writeError(ctx, err)
	}

	res, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			s.logger.Error("update order failed", zap.Int64("order_id", orderID), zap.Error(err))
		}
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UpdateOrderResponse{
		Success:   res.Success,
		OrderID:   res.OrderID,
		HistoryID: res.HistoryID,
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.queryFailed(ctx, "get order", err)
	}
	return ctx.JSON(http.StatusOK, toOrder(resp))
}

// GetActiveOrders handles GET /api/v1/orders/active, optionally filtered by ?storeID=.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	var storeID *int64
	if raw := ctx.QueryParam("storeID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(ctx, "invalid storeID")
		}
		storeID = &id
	}

	query, err := queries.NewGetActiveOrdersQuery(storeID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.queryFailed(ctx, "get active orders", err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			OrderID:    o.ID,
			StoreID:    o.StoreID,
			StoreName:  o.StoreName,
			Status:     o.Status,
			OrderTotal: o.OrderTotal,
			ItemCount:  o.ItemCount,
			CreatedAt:  o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetTableLogs handles GET /api/v1/logs?table=&employeeID=&recordID=&limit=.
func (s *Server) GetTableLogs(ctx echo.Context) error {
	var filter queries.TableLogsFilter
	err := echo.QueryParamsBinder(ctx).
		String("table", &filter.Table).
		Int64("employeeID", &filter.EmployeeID).
		Int64("recordID", &filter.RecordID).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return badRequest(ctx, "invalid query parameters")
	}

	query, err := queries.NewGetTableLogsQuery(filter)
	if err != nil {
		return writeError(ctx, err)
	}

	logs, err := s.getTableLogsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.queryFailed(ctx, "get table logs", err)
	}

	response := make([]TableLog, len(logs))
	for i, l := range logs {
		response[i] = TableLog{
			LogID:        l.ID,
			EmployeeID:   l.EmployeeID,
			EmployeeName: l.EmployeeName,
			TableName:    l.TableName,
			RecordID:     l.RecordID,
			Action:       l.Action,
			Comment:      l.Comment,
			Timestamp:    l.Timestamp,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) queryFailed(ctx echo.Context, op string, err error) error {
	if statusFor(err) == http.StatusInternalServerError {
		s.logger.Error(op+" failed", zap.Error(err))
	}
	return writeError(ctx, err)
}
