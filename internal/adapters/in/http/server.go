// Package http is the REST surface of the delivery platform. Handlers
// translate wire payloads into guarded commands and queries; every
// authorization and lifecycle decision lives in the core, not here.
package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	validate *validator.Validate

	// Command handlers
	bookDeliveryHandler        commands.BookDeliveryCommandHandler
	acceptDeliveryHandler      commands.AcceptDeliveryCommandHandler
	advanceDeliveryHandler     commands.AdvanceDeliveryCommandHandler
	cancelDeliveryHandler      commands.CancelDeliveryCommandHandler
	deleteDeliveryHandler      commands.DeleteDeliveryCommandHandler
	payDeliveryHandler         commands.PayDeliveryCommandHandler
	adminUpdateDeliveryHandler commands.AdminUpdateDeliveryCommandHandler
	createPorterHandler        commands.CreatePorterCommandHandler
	ratePorterHandler          commands.RatePorterCommandHandler

	// Query handlers
	activeDeliveriesHandler    queries.GetActiveDeliveriesQueryHandler
	deliveryHistoryHandler     queries.GetDeliveryHistoryQueryHandler
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	unpaidDeliveriesHandler    queries.GetUnpaidDeliveriesQueryHandler
	deliveryStatsHandler       queries.GetDeliveryStatsQueryHandler
	trackingPointsHandler      queries.GetTrackingPointsQueryHandler

	subscriber ports.EventSubscriber
}

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	BookDelivery        commands.BookDeliveryCommandHandler
	AcceptDelivery      commands.AcceptDeliveryCommandHandler
	AdvanceDelivery     commands.AdvanceDeliveryCommandHandler
	CancelDelivery      commands.CancelDeliveryCommandHandler
	DeleteDelivery      commands.DeleteDeliveryCommandHandler
	PayDelivery         commands.PayDeliveryCommandHandler
	AdminUpdateDelivery commands.AdminUpdateDeliveryCommandHandler
	CreatePorter        commands.CreatePorterCommandHandler
	RatePorter          commands.RatePorterCommandHandler

	ActiveDeliveries    queries.GetActiveDeliveriesQueryHandler
	DeliveryHistory     queries.GetDeliveryHistoryQueryHandler
	AvailableDeliveries queries.GetAvailableDeliveriesQueryHandler
	UnpaidDeliveries    queries.GetUnpaidDeliveriesQueryHandler
	DeliveryStats       queries.GetDeliveryStatsQueryHandler
	TrackingPoints      queries.GetTrackingPointsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The subscriber feeds the event stream endpoint.
func NewServer(handlers Handlers, subscriber ports.EventSubscriber) *Server {
	return &Server{
		validate:                   validator.New(),
		bookDeliveryHandler:        handlers.BookDelivery,
		acceptDeliveryHandler:      handlers.AcceptDelivery,
		advanceDeliveryHandler:     handlers.AdvanceDelivery,
		cancelDeliveryHandler:      handlers.CancelDelivery,
		deleteDeliveryHandler:      handlers.DeleteDelivery,
		payDeliveryHandler:         handlers.PayDelivery,
		adminUpdateDeliveryHandler: handlers.AdminUpdateDelivery,
		createPorterHandler:        handlers.CreatePorter,
		ratePorterHandler:          handlers.RatePorter,
		activeDeliveriesHandler:    handlers.ActiveDeliveries,
		deliveryHistoryHandler:     handlers.DeliveryHistory,
		availableDeliveriesHandler: handlers.AvailableDeliveries,
		unpaidDeliveriesHandler:    handlers.UnpaidDeliveries,
		deliveryStatsHandler:       handlers.DeliveryStats,
		trackingPointsHandler:      handlers.TrackingPoints,
		subscriber:                 subscriber,
	}
}

// RegisterRoutes mounts the API under /api/v1 behind bearer auth.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	api.POST("/deliveries", s.BookDelivery)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.GET("/deliveries/history", s.GetDeliveryHistory)
	api.GET("/deliveries/available", s.GetAvailableDeliveries)
	api.GET("/deliveries/unpaid", s.GetUnpaidDeliveries)
	api.GET("/deliveries/stats", s.GetDeliveryStats)
	api.GET("/deliveries/:id/tracking", s.GetTrackingPoints)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/advance", s.AdvanceDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/pay", s.PayDelivery)
	api.DELETE("/deliveries/:id", s.DeleteDelivery)
	api.PATCH("/deliveries/:id", s.AdminUpdateDelivery)
	api.POST("/porters", s.CreatePorter)
	api.POST("/porters/:id/rate", s.RatePorter)
	api.GET("/events", s.StreamEvents)
}

// BookDelivery handles POST /api/v1/deliveries.
func (s *Server) BookDelivery(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	var req BookDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return respondBadRequest(c, err)
	}

	pickup, err := kernel.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude, req.Pickup.Address)
	if err != nil {
		return respondError(c, err)
	}
	dropoff, err := kernel.NewGeoPoint(req.Dropoff.Latitude, req.Dropoff.Longitude, req.Dropoff.Address)
	if err != nil {
		return respondError(c, err)
	}
	packageType, err := delivery.PackageTypeFromString(req.PackageType)
	if err != nil {
		return respondError(c, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewBookDeliveryCommand(
		deliveryID,
		actor.ID(),
		pickup,
		dropoff,
		packageType,
		req.WeightKg,
		req.Description,
		req.ScheduledTime,
		req.Prepaid,
	)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.bookDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, BookDeliveryResponse{ID: deliveryID.String()})
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AcceptDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return respondBadRequest(c, err)
	}

	location, err := geoPointFromRequest(req.Location)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, actor, location)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.acceptDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdvanceDelivery handles POST /api/v1/deliveries/:id/advance.
func (s *Server) AdvanceDelivery(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AdvanceDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return respondBadRequest(c, err)
	}

	next, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}
	location, err := geoPointFromRequest(req.Location)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(deliveryID, actor, next, location)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.advanceDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actor)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.cancelDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id.
func (s *Server) DeleteDelivery(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID, actor)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.deleteDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PayDelivery handles POST /api/v1/deliveries/:id/pay.
func (s *Server) PayDelivery(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewPayDeliveryCommand(deliveryID, actor)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.payDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdminUpdateDelivery handles PATCH /api/v1/deliveries/:id.
func (s *Server) AdminUpdateDelivery(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AdminUpdateDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return respondBadRequest(c, err)
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	var porterID *kernel.UUID
	if req.PorterID != nil {
		id, idErr := kernel.UUIDFromString(*req.PorterID)
		if idErr != nil {
			return respondError(c, errs.NewValueIsInvalidErrorWithCause("porterId", idErr))
		}
		porterID = &id
	}

	cmd, err := commands.NewAdminUpdateDeliveryCommand(deliveryID, actor, status, porterID)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.adminUpdateDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreatePorter handles POST /api/v1/porters.
func (s *Server) CreatePorter(c echo.Context) error {
	var req CreatePorterRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return respondBadRequest(c, err)
	}

	porterID := kernel.NewUUID()
	cmd, err := commands.NewCreatePorterCommand(porterID, req.Name, req.Phone)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.createPorterHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CreatePorterResponse{ID: porterID.String()})
}

// RatePorter handles POST /api/v1/porters/:id/rate.
func (s *Server) RatePorter(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	porterID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req RatePorterRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return respondBadRequest(c, err)
	}

	cmd, err := commands.NewRatePorterCommand(porterID, actor, req.Rating)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.ratePorterHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetActiveDeliveriesQuery(actor)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.activeDeliveriesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryListResponse(result))
}

// GetDeliveryHistory handles GET /api/v1/deliveries/history.
func (s *Server) GetDeliveryHistory(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetDeliveryHistoryQuery(actor)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.deliveryHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryListResponse(result))
}

// GetAvailableDeliveries handles GET /api/v1/deliveries/available.
func (s *Server) GetAvailableDeliveries(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetAvailableDeliveriesQuery(actor)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.availableDeliveriesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryListResponse(result))
}

// GetUnpaidDeliveries handles GET /api/v1/deliveries/unpaid.
func (s *Server) GetUnpaidDeliveries(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetUnpaidDeliveriesQuery(actor)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.unpaidDeliveriesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryListResponse(result))
}

// GetDeliveryStats handles GET /api/v1/deliveries/stats.
func (s *Server) GetDeliveryStats(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetDeliveryStatsQuery(actor)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.deliveryStatsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, DeliveryStatsResponse(result))
}

// GetTrackingPoints handles GET /api/v1/deliveries/:id/tracking.
func (s *Server) GetTrackingPoints(c echo.Context) error {
	actor, deliveryID, err := s.actorAndID(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetTrackingPointsQuery(deliveryID, actor)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.trackingPointsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]TrackingPointResponse, len(result))
	for i, point := range result {
		response[i] = TrackingPointResponse{
			ID: point.ID.String(),
			Position: GeoPointResponse{
				Latitude:  point.Position.Latitude,
				Longitude: point.Position.Longitude,
				Address:   point.Position.Address,
			},
			RecordedAt: point.RecordedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// actorAndID extracts the acting identity and the :id path parameter.
func (s *Server) actorAndID(c echo.Context) (delivery.Actor, kernel.UUID, error) {
	actor, err := actorFromContext(c)
	if err != nil {
		return delivery.Actor{}, kernel.UUID{}, err
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return delivery.Actor{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	return actor, deliveryID, nil
}

func geoPointFromRequest(req *GeoPointRequest) (*kernel.GeoPoint, error) {
	if req == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude, req.Address)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
