package http

import (
	"errors"
	"net/http"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewKitchenOrderRequest struct {
	OnlineOrderRef string   `json:"online_order_ref"`
	Pizzas         []string `json:"pizzas"`
}

type CreatedResponse struct {
	Ref     string `json:"ref"`
	Warning string `json:"warning,omitempty"`
}

// AcceptedResponse is the body of a 202: the command was recorded but a
// follow-up reaction failed.
type AcceptedResponse struct {
	Warning string `json:"warning"`
}

// Server exposes the kitchen use cases over HTTP.
type Server struct {
	// Command handlers
	createKitchenOrderHandler  commands.CreateKitchenOrderCommandHandler
	startOrderPrepHandler      commands.StartOrderPrepCommandHandler
	finishPizzaPrepHandler     commands.FinishPizzaPrepCommandHandler
	removePizzaFromOvenHandler commands.RemovePizzaFromOvenCommandHandler

	// Query handlers
	getKitchenOrderHandler              queries.GetKitchenOrderQueryHandler
	getKitchenOrderByOnlineOrderHandler queries.GetKitchenOrderByOnlineOrderQueryHandler
	getPizzaHandler                     queries.GetPizzaQueryHandler
	getPizzasByKitchenOrderHandler      queries.GetPizzasByKitchenOrderQueryHandler
}

func NewServer(
	createKitchenOrderHandler commands.CreateKitchenOrderCommandHandler,
	startOrderPrepHandler commands.StartOrderPrepCommandHandler,
	finishPizzaPrepHandler commands.FinishPizzaPrepCommandHandler,
	removePizzaFromOvenHandler commands.RemovePizzaFromOvenCommandHandler,
	getKitchenOrderHandler queries.GetKitchenOrderQueryHandler,
	getKitchenOrderByOnlineOrderHandler queries.GetKitchenOrderByOnlineOrderQueryHandler,
	getPizzaHandler queries.GetPizzaQueryHandler,
	getPizzasByKitchenOrderHandler queries.GetPizzasByKitchenOrderQueryHandler,
) *Server {
	return &Server{
		createKitchenOrderHandler:           createKitchenOrderHandler,
		startOrderPrepHandler:               startOrderPrepHandler,
		finishPizzaPrepHandler:              finishPizzaPrepHandler,
		removePizzaFromOvenHandler:          removePizzaFromOvenHandler,
		getKitchenOrderHandler:              getKitchenOrderHandler,
		getKitchenOrderByOnlineOrderHandler: getKitchenOrderByOnlineOrderHandler,
		getPizzaHandler:                     getPizzaHandler,
		getPizzasByKitchenOrderHandler:      getPizzasByKitchenOrderHandler,
	}
}

// Register mounts the health check and the /api/v1 routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/kitchen-orders", s.CreateKitchenOrder)
	api.GET("/kitchen-orders", s.FindKitchenOrderByOnlineOrder)
	api.GET("/kitchen-orders/:ref", s.GetKitchenOrder)
	api.GET("/kitchen-orders/:ref/pizzas", s.GetPizzasByKitchenOrder)
	api.POST("/kitchen-orders/:ref/prep", s.StartOrderPrep)
	api.GET("/pizzas/:ref", s.GetPizza)
	api.POST("/pizzas/:ref/prep/finish", s.FinishPizzaPrep)
	api.POST("/pizzas/:ref/oven/remove", s.RemovePizzaFromOven)
}

// CreateKitchenOrder handles POST /api/v1/kitchen-orders.
func (s *Server) CreateKitchenOrder(ctx echo.Context) error {
	var req NewKitchenOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	onlineOrderRef, err := kernel.OnlineOrderRefFromString(req.OnlineOrderRef)
	if err != nil {
		return errorJSON(ctx, err)
	}

	sizes := make([]kernel.PizzaSize, 0, len(req.Pizzas))
	for _, name := range req.Pizzas {
		size, parseErr := kernel.ParsePizzaSize(name)
		if parseErr != nil {
			return errorJSON(ctx, parseErr)
		}
		sizes = append(sizes, size)
	}

	cmd, err := commands.NewCreateKitchenOrderCommand(onlineOrderRef, sizes)
	if err != nil {
		return errorJSON(ctx, err)
	}

	ref, err := s.createKitchenOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if StatusOf(err) == http.StatusAccepted && !ref.IsIdentity() {
			ctx.Logger().Warn(err)
			return ctx.JSON(http.StatusAccepted, CreatedResponse{Ref: ref.String(), Warning: err.Error()})
		}
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{Ref: ref.String()})
}

// FindKitchenOrderByOnlineOrder handles GET /api/v1/kitchen-orders?online_order_ref=.
func (s *Server) FindKitchenOrderByOnlineOrder(ctx echo.Context) error {
	ref, err := kernel.OnlineOrderRefFromString(ctx.QueryParam("online_order_ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetKitchenOrderByOnlineOrderQuery(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	order, err := s.getKitchenOrderByOnlineOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, order)
}

// GetKitchenOrder handles GET /api/v1/kitchen-orders/:ref.
func (s *Server) GetKitchenOrder(ctx echo.Context) error {
	ref, err := kernel.KitchenOrderRefFromString(ctx.Param("ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetKitchenOrderQuery(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	order, err := s.getKitchenOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, order)
}

// GetPizzasByKitchenOrder handles GET /api/v1/kitchen-orders/:ref/pizzas.
func (s *Server) GetPizzasByKitchenOrder(ctx echo.Context) error {
	ref, err := kernel.KitchenOrderRefFromString(ctx.Param("ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetPizzasByKitchenOrderQuery(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	pizzas, err := s.getPizzasByKitchenOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pizzas)
}

// StartOrderPrep handles POST /api/v1/kitchen-orders/:ref/prep.
func (s *Server) StartOrderPrep(ctx echo.Context) error {
	ref, err := kernel.KitchenOrderRefFromString(ctx.Param("ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewStartOrderPrepCommand(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.startOrderPrepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPizza handles GET /api/v1/pizzas/:ref.
func (s *Server) GetPizza(ctx echo.Context) error {
	ref, err := kernel.PizzaRefFromString(ctx.Param("ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetPizzaQuery(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	p, err := s.getPizzaHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, p)
}

// FinishPizzaPrep handles POST /api/v1/pizzas/:ref/prep/finish.
func (s *Server) FinishPizzaPrep(ctx echo.Context) error {
	ref, err := kernel.PizzaRefFromString(ctx.Param("ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewFinishPizzaPrepCommand(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.finishPizzaPrepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemovePizzaFromOven handles POST /api/v1/pizzas/:ref/oven/remove.
func (s *Server) RemovePizzaFromOven(ctx echo.Context) error {
	ref, err := kernel.PizzaRefFromString(ctx.Param("ref"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewRemovePizzaFromOvenCommand(ref)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.removePizzaFromOvenHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func errorJSON(ctx echo.Context, err error) error {
	code := StatusOf(err)
	switch code {
	case http.StatusAccepted:
		ctx.Logger().Warn(err)
		return ctx.JSON(code, AcceptedResponse{Warning: err.Error()})
	case http.StatusInternalServerError:
		ctx.Logger().Error(err)
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

// StatusOf maps a use case error to its HTTP status. A dispatch failure
// means the command's own event was committed, so it is 202 whatever the
// reaction failed with. A replay failure is a server fault.
func StatusOf(err error) int {
	var dispatchErr *kernel.DispatchError
	switch {
	case errors.As(err, &dispatchErr):
		return http.StatusAccepted
	case errors.Is(err, errs.ErrReplayIsInconsistent):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalStateTransition), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
