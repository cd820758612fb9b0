package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"stay/config"
	"stay/infras/kafka"
	"stay/infras/otel"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/repository"
	roomModel "stay/internal/domains/room/model"
	roomRepo "stay/internal/domains/room/repository"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		producer: producer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
	}

	room, err := s.admit(ctx, booking)
	if err != nil {
		return err
	}

	conflict, err := s.repo.InsertExclusive(ctx, booking)
	if err != nil {
		return s.mapConflict(ctx, err, room, booking, conflict, "create")
	}

	s.publish(ctx, constant.KafkaTopicBookingCreated, booking)
	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeFilter(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
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
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getOwned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if !existing.IsActive {
		return failure.BadRequestFromString("cancelled bookings cannot be rescheduled")
	}

	updated, err := req.Apply(existing, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
	}

	if sameStay(existing, updated) {
		if err := s.amend(ctx, updated); err != nil {
			return err
		}

		s.invalidate(ctx, id)

		return nil
	}

	room, err := s.admitReschedule(ctx, updated, existing)
	if err != nil {
		return err
	}

	conflict, err := s.repo.UpdateExclusive(ctx, updated)
	if err != nil {
		return s.mapConflict(ctx, err, room, updated, conflict, "update")
	}

	s.invalidate(ctx, id)

	return nil
}

// sameStay reports whether an update leaves the room and the stay interval
// untouched.
func sameStay(a, b model.Booking) bool {
	return a.RoomID == b.RoomID &&
		a.CheckInDate.Equal(b.CheckInDate) &&
		a.CheckOutDate.Equal(b.CheckOutDate)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if !booking.IsActive {
		return failure.BadRequestFromString("booking is already cancelled")
	}

	cancelled := map[string]any{
		model.FieldIsActive:      false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, cancelled, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.publish(ctx, constant.KafkaTopicBookingCancelled, booking)
	s.invalidate(ctx, id)

	return nil
}

// admit runs every stay-interval check that must pass before a new stay is
// written: well-formed interval, check-in not in the past, room listed and
// available, party size within room capacity.
func (s *serviceImpl) admit(ctx context.Context, booking model.Booking) (roomModel.Room, error) {
	if !booking.CheckInDate.Before(booking.CheckOutDate) {
		return roomModel.Room{}, failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	if booking.CheckInDate.Before(timezone.Today()) {
		return roomModel.Room{}, failure.BadRequestFromString("check_in_date cannot be in the past")
	}

	return s.admitRoom(ctx, booking)
}

// admitReschedule is admit for a booking that moves room or dates. A stay
// already under way keeps its original check-in, so the past-date rule only
// applies when the check-in itself changes.
func (s *serviceImpl) admitReschedule(ctx context.Context, updated, existing model.Booking) (roomModel.Room, error) {
	if !updated.CheckInDate.Before(updated.CheckOutDate) {
		return roomModel.Room{}, failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	if !updated.CheckInDate.Equal(existing.CheckInDate) && updated.CheckInDate.Before(timezone.Today()) {
		return roomModel.Room{}, failure.BadRequestFromString("check_in_date cannot be in the past")
	}

	return s.admitRoom(ctx, updated)
}

func (s *serviceImpl) admitRoom(ctx context.Context, booking model.Booking) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.BadRequestFromString("room does not exist")
	}

	if !room.IsAvailable {
		return room, failure.BadRequestFromString("room is not available for booking")
	}

	if booking.NumberOfPersons > room.Capacity {
		return room, failure.BadRequestFromString(fmt.Sprintf("number_of_persons exceeds room capacity of %d", room.Capacity))
	}

	return room, nil
}

// amend applies a change that leaves the room and interval alone, so the
// exclusive write path is skipped. The new party size must still fit the
// room.
func (s *serviceImpl) amend(ctx context.Context, booking model.Booking) error {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if booking.NumberOfPersons > room.Capacity {
		return failure.BadRequestFromString(fmt.Sprintf("number_of_persons exceeds room capacity of %d", room.Capacity))
	}

	fields := map[string]any{
		model.FieldNumberOfPersons: booking.NumberOfPersons,
		constant.FieldModifiedAt:   booking.ModifiedAt,
		constant.FieldModifiedBy:   booking.ModifiedBy,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// mapConflict translates a repository conflict into a 409 naming the room
// and the blocking stay. The exclusion-constraint backstop path carries no
// blocking booking, so it is looked up before the message is composed; the
// requested dates are the fallback when the lookup comes back empty.
func (s *serviceImpl) mapConflict(ctx context.Context, err error, room roomModel.Room, requested, conflict model.Booking, op string) error {
	if errors.Is(err, repository.ErrBookingConflict) {
		blocking := conflict
		if blocking.ID == constant.Empty {
			found, findErr := s.repo.FindConflict(ctx, requested.RoomID, requested.CheckInDate, requested.CheckOutDate, requested.ID)
			if findErr == nil && found.ID != constant.Empty {
				blocking = found
			} else {
				blocking = requested
			}
		}

		return failure.Conflict(fmt.Sprintf(
			"room %d is already booked from %s to %s",
			room.RoomNumber,
			blocking.CheckInDate.Format(constant.DateOnlyFormat),
			blocking.CheckOutDate.Format(constant.DateOnlyFormat),
		))
	}

	log.Error().Err(err).Str("op", op).Msg("failed to write booking")

	return fmt.Errorf("failed to %s booking: %w", op, err)
}

// scopeFilter narrows a query to what the caller may see: managers get rows
// for the hotels they manage, guests get their own bookings. The scope comes
// from the token claims, never from request input.
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

// getOwned fetches a booking and reports not found when it exists but is
// outside the caller's scope.
func (s *serviceImpl) getOwned(ctx context.Context, id string) (model.Booking, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	owner := booking.UserID
	if role == constant.RoleManager {
		owner = booking.ManagerID
	}

	if owner != user {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) publish(ctx context.Context, topic string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   booking.ID,
			Value: dto.NewBookingEvent(booking),
		}

		if err := s.producer.SendMessages(c, topic, message); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
