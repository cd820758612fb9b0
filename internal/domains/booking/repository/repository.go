package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/booking/model"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/logger"
	gRepo "stay/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrBookingConflict is returned when the requested stay overlaps an active
// booking for the same room.
var ErrBookingConflict = errors.New("booking dates conflict with an existing booking")

const advisoryLockQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

// conflictQuery finds the first active booking for a room whose half-open
// [check_in_date, check_out_date) interval overlaps the requested one,
// excluding the booking being rescheduled.
const conflictQuery = `
	SELECT id, room_id, user_id, check_in_date, check_out_date, number_of_persons, is_active, booked_on,
	       created_at, modified_at, created_by, modified_by
	FROM bookings
	WHERE room_id = $1
	  AND is_active
	  AND id != $2
	  AND check_in_date < $4
	  AND check_out_date > $3
	ORDER BY check_in_date
	LIMIT 1`

const updateExclusiveQuery = `
	UPDATE bookings
	SET room_id = :room_id,
	    check_in_date = :check_in_date,
	    check_out_date = :check_out_date,
	    number_of_persons = :number_of_persons,
	    modified_at = :modified_at,
	    modified_by = :modified_by
	WHERE id = :id`

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (model.Booking, error)
	InsertExclusive(ctx context.Context, booking model.Booking) (model.Booking, error)
	UpdateExclusive(ctx context.Context, booking model.Booking) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindConflict returns the first active booking overlapping the requested
// stay, or a zero booking when the room is free. It reads outside any lock,
// so the result is advisory only; admission re-checks under the room lock.
func (repo *repositoryImpl) FindConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (conflict model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindConflict")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, conflictQuery)

	err = repo.db.Read.GetContext(ctx, &conflict, conflictQuery, roomID, excludeID, checkIn, checkOut)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model.Booking{}, fmt.Errorf("failed to find conflicting booking: %w", err)
	}

	return conflict, nil
}

// InsertExclusive admits a booking atomically: it serializes on a
// per-room advisory lock, re-checks for overlap and inserts in the same
// transaction. On overlap it returns the blocking booking together with
// ErrBookingConflict. The exclusion constraint on bookings is the backstop
// for writes that bypass the lock.
func (repo *repositoryImpl) InsertExclusive(ctx context.Context, booking model.Booking) (conflict model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertExclusive")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		found, txErr := repo.conflictInTx(ctx, tx, booking)
		if txErr != nil {
			return txErr
		}

		if found.ID != constant.Empty {
			conflict = found

			return ErrBookingConflict
		}

		if txErr = repo.InsertTx(ctx, tx, booking); txErr != nil {
			if shared.IsPqError(txErr, constant.PqErrorCodeExclusionViolation) {
				return ErrBookingConflict
			}

			return txErr
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingConflict) {
			return conflict, ErrBookingConflict
		}

		logger.ErrorWithStack(err)

		return conflict, fmt.Errorf("failed to insert booking: %w", err)
	}

	return model.Booking{}, nil
}

// UpdateExclusive reschedules a booking under the same lock discipline as
// InsertExclusive, excluding the booking itself from the conflict check.
func (repo *repositoryImpl) UpdateExclusive(ctx context.Context, booking model.Booking) (conflict model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateExclusive")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		found, txErr := repo.conflictInTx(ctx, tx, booking)
		if txErr != nil {
			return txErr
		}

		if found.ID != constant.Empty {
			conflict = found

			return ErrBookingConflict
		}

		if _, txErr = tx.NamedExecContext(ctx, updateExclusiveQuery, booking); txErr != nil {
			if shared.IsPqError(txErr, constant.PqErrorCodeExclusionViolation) {
				return ErrBookingConflict
			}

			return txErr
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingConflict) {
			return conflict, ErrBookingConflict
		}

		logger.ErrorWithStack(err)

		return conflict, fmt.Errorf("failed to update booking: %w", err)
	}

	return model.Booking{}, nil
}

// conflictInTx takes the per-room advisory lock and runs the conflict query
// inside the transaction. The lock is released on commit or rollback.
func (repo *repositoryImpl) conflictInTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (model.Booking, error) {
	if _, err := tx.ExecContext(ctx, advisoryLockQuery, booking.RoomID); err != nil {
		logger.ErrorWithStack(err)

		return model.Booking{}, fmt.Errorf("failed to acquire room lock: %w", err)
	}

	var conflict model.Booking

	err := tx.GetContext(ctx, &conflict, conflictQuery, booking.RoomID, booking.ID, booking.CheckInDate, booking.CheckOutDate)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model.Booking{}, fmt.Errorf("failed to find conflicting booking: %w", err)
	}

	return conflict, nil
}
