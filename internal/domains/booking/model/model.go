package model

import (
	"stay/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldUserID          = "user_id"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldNumberOfPersons = "number_of_persons"
	FieldIsActive        = "is_active"
	FieldBookedOn        = "booked_on"
)

type Booking struct {
	ID              string    `db:"id"`
	RoomID          string    `db:"room_id"`
	UserID          string    `db:"user_id"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	NumberOfPersons int       `db:"number_of_persons"`
	IsActive        bool      `db:"is_active"`
	BookedOn        time.Time `db:"booked_on"`
	RoomNumber      int       `db:"room_number" table:"rooms"`
	HotelID         string    `db:"hotel_id"    table:"rooms"`
	HotelName       string    `db:"hotel_name"  table:"hotels" column:"name"`
	ManagerID       string    `db:"manager_id"  table:"hotels"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id JOIN hotels ON hotels.id = rooms.hotel_id"
}

// Overlaps reports whether the half-open stay intervals [aIn, aOut) and
// [bIn, bOut) share at least one night. A check-out on another booking's
// check-in day does not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// OverlapsRange reports whether the booking occupies any night of the
// half-open interval [in, out).
func (b Booking) OverlapsRange(in, out time.Time) bool {
	return Overlaps(b.CheckInDate, b.CheckOutDate, in, out)
}
