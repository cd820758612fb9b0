package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/shared/constant"
	"stay/shared/timezone"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:          "room-1",
		CheckInDate:     "2026-09-10",
		CheckOutDate:    "2026-09-15",
		NumberOfPersons: 2,
	}

	booking, err := req.ToModel("guest-1")

	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "room-1", booking.RoomID)
	assert.Equal(t, "guest-1", booking.UserID)
	assert.Equal(t, 2, booking.NumberOfPersons)
	assert.True(t, booking.IsActive)
	assert.False(t, booking.BookedOn.IsZero())

	assert.Equal(t, "2026-09-10", booking.CheckInDate.Format(constant.DateOnlyFormat))
	assert.Equal(t, "2026-09-15", booking.CheckOutDate.Format(constant.DateOnlyFormat))

	assert.Equal(t, "guest-1", booking.CreatedBy)
	assert.Equal(t, "guest-1", booking.ModifiedBy)
}

func TestCreateBookingRequest_ToModelInvalidDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:          "room-1",
		CheckInDate:     "10-09-2026",
		CheckOutDate:    "2026-09-15",
		NumberOfPersons: 2,
	}

	_, err := req.ToModel("guest-1")

	assert.Error(t, err)
}

func TestUpdateBookingRequest_Apply(t *testing.T) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, "2026-09-10")
	require.NoError(t, err)

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, "2026-09-15")
	require.NoError(t, err)

	existing := model.Booking{
		ID:              "booking-1",
		RoomID:          "room-1",
		UserID:          "guest-1",
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfPersons: 2,
		IsActive:        true,
	}

	t.Run("reschedules only the provided fields", func(t *testing.T) {
		req := dto.UpdateBookingRequest{
			CheckOutDate: "2026-09-18",
		}

		updated, err := req.Apply(existing, "guest-1")

		require.NoError(t, err)
		assert.Equal(t, existing.RoomID, updated.RoomID)
		assert.Equal(t, existing.CheckInDate, updated.CheckInDate)
		assert.Equal(t, "2026-09-18", updated.CheckOutDate.Format(constant.DateOnlyFormat))
		assert.Equal(t, existing.NumberOfPersons, updated.NumberOfPersons)
		assert.Equal(t, "guest-1", updated.ModifiedBy)
	})

	t.Run("moves the booking to another room", func(t *testing.T) {
		req := dto.UpdateBookingRequest{
			RoomID:          "room-2",
			NumberOfPersons: 3,
		}

		updated, err := req.Apply(existing, "guest-1")

		require.NoError(t, err)
		assert.Equal(t, "room-2", updated.RoomID)
		assert.Equal(t, 3, updated.NumberOfPersons)
		assert.Equal(t, existing.CheckInDate, updated.CheckInDate)
		assert.Equal(t, existing.CheckOutDate, updated.CheckOutDate)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		req := dto.UpdateBookingRequest{
			CheckInDate: "next tuesday",
		}

		_, err := req.Apply(existing, "guest-1")

		assert.Error(t, err)
	})
}

func TestBookingResponse_FromModel(t *testing.T) {
	checkIn := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	bookedOn := time.Date(2026, time.August, 1, 9, 30, 0, 0, time.UTC)

	booking := model.Booking{
		ID:              "booking-1",
		RoomID:          "room-1",
		RoomNumber:      101,
		HotelID:         "hotel-1",
		HotelName:       "Grand Stay",
		UserID:          "guest-1",
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfPersons: 2,
		IsActive:        true,
		BookedOn:        bookedOn,
	}

	res := &dto.BookingResponse{}
	res.FromModel(booking)

	assert.Equal(t, "booking-1", res.ID)
	assert.Equal(t, "2026-09-10", res.CheckInDate)
	assert.Equal(t, "2026-09-15", res.CheckOutDate)
	assert.Equal(t, 101, res.RoomNumber)
	assert.Equal(t, "Grand Stay", res.HotelName)
	assert.Equal(t, bookedOn.Format(time.RFC3339), res.BookedOn)
}

func TestNewBookingEvent(t *testing.T) {
	checkIn := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	booking := model.Booking{
		ID:              "booking-1",
		RoomID:          "room-1",
		UserID:          "guest-1",
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfPersons: 2,
	}

	event := dto.NewBookingEvent(booking)

	assert.Equal(t, "booking-1", event.BookingID)
	assert.Equal(t, "room-1", event.RoomID)
	assert.Equal(t, "guest-1", event.UserID)
	assert.Equal(t, "2026-09-10", event.CheckInDate)
	assert.Equal(t, "2026-09-15", event.CheckOutDate)
	assert.NotEmpty(t, event.OccurredAt)
}
