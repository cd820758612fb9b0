package dto

import (
	"stay/internal/domains/booking/model"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID          string `json:"room_id"           validate:"required"`
	CheckInDate     string `json:"check_in_date"     validate:"required,dateonly"`
	CheckOutDate    string `json:"check_out_date"    validate:"required,dateonly"`
	NumberOfPersons int    `json:"number_of_persons" validate:"required,gt=0"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		UserID:          user,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfPersons: c.NumberOfPersons,
		IsActive:        true,
		BookedOn:        timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	RoomID          string `json:"room_id"           validate:"omitempty"`
	CheckInDate     string `json:"check_in_date"     validate:"omitempty,dateonly"`
	CheckOutDate    string `json:"check_out_date"    validate:"omitempty,dateonly"`
	NumberOfPersons int    `json:"number_of_persons" validate:"omitempty,gt=0"`
}

// Apply merges the request onto an existing booking, returning the booking
// as it should be after the reschedule.
func (u *UpdateBookingRequest) Apply(existing model.Booking, user string) (model.Booking, error) {
	updated := existing

	if u.RoomID != "" {
		updated.RoomID = u.RoomID
	}

	if u.CheckInDate != "" {
		checkIn, err := timezone.Parse(constant.DateOnlyFormat, u.CheckInDate)
		if err != nil {
			return model.Booking{}, err
		}

		updated.CheckInDate = checkIn
	}

	if u.CheckOutDate != "" {
		checkOut, err := timezone.Parse(constant.DateOnlyFormat, u.CheckOutDate)
		if err != nil {
			return model.Booking{}, err
		}

		updated.CheckOutDate = checkOut
	}

	if u.NumberOfPersons > 0 {
		updated.NumberOfPersons = u.NumberOfPersons
	}

	updated.ModifiedAt = timezone.Now()
	updated.ModifiedBy = user

	return updated, nil
}

type BookingResponse struct {
	ID              string `json:"id"`
	RoomID          string `json:"room_id"`
	RoomNumber      int    `json:"room_number,omitempty"`
	HotelID         string `json:"hotel_id,omitempty"`
	HotelName       string `json:"hotel_name,omitempty"`
	UserID          string `json:"user_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	NumberOfPersons int    `json:"number_of_persons"`
	IsActive        bool   `json:"is_active"`
	BookedOn        string `json:"booked_on"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.UserID = model.UserID
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.NumberOfPersons = model.NumberOfPersons
	r.IsActive = model.IsActive
	r.BookedOn = model.BookedOn.Format(time.RFC3339)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookingEvent struct {
	BookingID       string `json:"booking_id"`
	RoomID          string `json:"room_id"`
	UserID          string `json:"user_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	NumberOfPersons int    `json:"number_of_persons"`
	OccurredAt      string `json:"occurred_at"`
}

func NewBookingEvent(booking model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:       booking.ID,
		RoomID:          booking.RoomID,
		UserID:          booking.UserID,
		CheckInDate:     booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate:    booking.CheckOutDate.Format(constant.DateOnlyFormat),
		NumberOfPersons: booking.NumberOfPersons,
		OccurredAt:      timezone.Now().Format(time.RFC3339),
	}
}
