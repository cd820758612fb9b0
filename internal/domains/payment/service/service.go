package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/kafka"
	"stay/infras/otel"
	bookingModel "stay/internal/domains/booking/model"
	bookingRepo "stay/internal/domains/booking/repository"
	"stay/internal/domains/payment/model"
	"stay/internal/domains/payment/model/dto"
	"stay/internal/domains/payment/repository"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"
)

type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	producer    kafka.Client
}

func New(repo repository.Payment, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Client) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		producer:    producer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	owner := booking.UserID
	if role == constant.RoleManager {
		owner = booking.ManagerID
	}

	if booking.ID == constant.Empty || owner != user {
		return failure.NotFound("booking not found")
	}

	if req.AmountPaid <= 0 {
		return failure.BadRequestFromString("amount_paid must be greater than zero")
	}

	transactionFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTransactionID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.TransactionID,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, transactionFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check transaction id")

		return fmt.Errorf("failed to check transaction id: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("transaction_id has already been recorded")
	}

	payment := req.ToModel(user)

	if err = s.repo.Insert(ctx, payment); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.BadRequestFromString("transaction_id has already been recorded")
		}

		log.Error().Err(err).Msg("failed to create payment")

		return fmt.Errorf("failed to create payment: %w", err)
	}

	s.publish(ctx, payment)
	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeFilter(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.count(ctx, req, s.scopeFilter(ctx, filter))
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	owner := payment.UserID
	if role == constant.RoleManager {
		owner = payment.ManagerID
	}

	if payment.ID == constant.Empty || owner != user {
		return res, failure.NotFound("payment not found")
	}

	res.FromModel(payment)

	return res, nil
}

// scopeFilter narrows payment queries the same way booking queries are
/// narrowed: managers by the hotels they manage, guests by their own rows.
func (s *serviceImpl) scopeFilter(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	scope := gDto.Filter{
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    user,
		Table:    model.TableName,
		ArgName:  "scope_user_id",
	}

	if role == constant.RoleManager {
		scope = gDto.Filter{
			Field:    "manager_id",
			Operator: gDto.FilterOperatorEq,
			Value:    user,
			Table:    "hotels",
			ArgName:  "scope_manager_id",
		}
	}

	return gDto.FilterGroup{
		Filters:  []any{scope, filter},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (s *serviceImpl) publish(ctx context.Context, payment model.Payment) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   payment.ID,
			Value: dto.NewPaymentEvent(payment),
		}

		if err := s.producer.SendMessages(c, constant.KafkaTopicPaymentRecorded, message); err != nil {
			log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to publish payment event")
		}
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
	}()
}
