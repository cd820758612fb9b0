package hotel

import (
	"net/http"
	"stay/infras/otel"
	"stay/internal/domains/hotel/model"
	"stay/internal/domains/hotel/model/dto"
	"stay/internal/domains/hotel/service"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/validator"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Hotel
	otel    otel.Otel
}

func New(service service.Hotel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateHotel)
		routerGroup.Get("/", handler.GetHotels)
		routerGroup.Get("/{id}", handler.GetHotelByID)
		routerGroup.Patch("/{id}", handler.UpdateHotel)
		routerGroup.Delete("/{id}", handler.DeleteHotel)
	})
}

// CreateHotel handles the creation of a new hotel.
// @Summary Create a new hotel
// @Description Create a new hotel managed by the authenticated manager.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param request body dto.CreateHotelRequest true "Create Hotel Request"
// @Success 201 {object} response.Message "Hotel created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	req := dto.CreateHotelRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Hotel created successfully")
}

// GetHotels retrieves all hotels based on query parameters.
// @Summary Get all hotels
// @Description Retrieve all hotels with optional filtering and pagination.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by hotel name (partial match)"
// @Param status query string false "Filter by status (available, booked, under_maintenance, closed)"
// @Success 200 {object} response.Data[dto.GetHotelsResponse] "List of hotels"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	hotels, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetHotelByID retrieves a hotel by its ID.
// @Summary Get a hotel by ID
// @Description Retrieve a hotel by its unique identifier.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelResponse] "Hotel details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [get]
func (handler *Handler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hotel, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotel)
}

// UpdateHotel updates an existing hotel by its ID.
// @Summary Update a hotel by ID
// @Description Update the details of a hotel managed by the authenticated manager.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.UpdateHotelRequest true "Update Hotel Request"
// @Success 200 {object} response.Message "Hotel updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateHotelRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hotel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hotel updated successfully")
}

// DeleteHotel deletes a hotel by its ID.
// @Summary Delete a hotel by ID
// @Description Delete a hotel and everything under it: rooms, bookings and payments.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Message "Hotel deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hotel")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hotel deleted successfully")
}
