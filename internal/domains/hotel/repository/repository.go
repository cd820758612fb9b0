package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/hotel/model"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/logger"
	gRepo "stay/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteCascade(ctx context.Context, hotelID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteCascade removes a hotel together with its rooms, their bookings and
// the payments attached to those bookings, in a single transaction. Deletion
// order follows the foreign key chain payments -> bookings -> rooms -> hotels.
func (repo *repositoryImpl) DeleteCascade(ctx context.Context, hotelID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.DeleteCascade")
	defer scope.End()
	defer scope.TraceIfError(err)

	queries := []string{
		`DELETE FROM payments
		 WHERE booking_id IN (
			SELECT bookings.id FROM bookings
			JOIN rooms ON rooms.id = bookings.room_id
			WHERE rooms.hotel_id = $1
		 )`,
		`DELETE FROM bookings
		 WHERE room_id IN (SELECT id FROM rooms WHERE hotel_id = $1)`,
		`DELETE FROM rooms WHERE hotel_id = $1`,
		`DELETE FROM hotels WHERE id = $1`,
	}

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, query := range queries {
			if _, err := tx.ExecContext(ctx, query, hotelID); err != nil {
				logger.ErrorWithStack(err)

				return fmt.Errorf("failed to delete hotel cascade: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete hotel (%s): %w", model.EntityName, err)
	}

	return nil
}
