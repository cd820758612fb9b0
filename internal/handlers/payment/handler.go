package payment

import (
	"net/http"
	"stay/infras/otel"
	"stay/internal/domains/payment/model"
	"stay/internal/domains/payment/model/dto"
	"stay/internal/domains/payment/service"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/validator"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePayment)
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
	})
}

// CreatePayment records a payment against a booking.
// @Summary Record a payment
// @Description Record a payment against one of the caller's bookings.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Create Payment Request"
// @Success 201 {object} response.Message "Payment recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePayment")
	defer scope.End()

	req := dto.CreatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment recorded successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Payment recorded successfully")
}

// GetPayments retrieves all payments visible to the caller.
// @Summary Get all payments
// @Description Retrieve payments with optional filtering and pagination. Managers see payments for their hotels, guests see their own.
// @Tags Payment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking ID"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookingID := r.URL.Query().Get(model.FieldBookingID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if bookingID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingID,
			Table:    model.TableName,
		})
	}

	payments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment by its ID.
// @Summary Get a payment by ID
// @Description Retrieve a payment by its unique identifier. Payments outside the caller's scope report not found.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment retrieved successfully")

	response.WithJSON(w, http.StatusOK, payment)
}
