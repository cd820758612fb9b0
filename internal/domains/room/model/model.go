package model

import "stay/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldRoomNumber  = "room_number"
	FieldRoomType    = "room_type"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldIsAvailable = "is_available"

	TypeStandard  = "standard"
	TypeDeluxe    = "deluxe"
	TypeSuite     = "suite"
	TypeDormitory = "dormitory"
)

type Room struct {
	ID          string  `db:"id"`
	HotelID     string  `db:"hotel_id"`
	RoomNumber  int     `db:"room_number"`
	RoomType    string  `db:"room_type"`
	Price       float64 `db:"price"`
	Capacity    int     `db:"capacity"`
	IsAvailable bool    `db:"is_available"`
	HotelName   string  `db:"hotel_name" table:"hotels" column:"name"`
	ManagerID   string  `db:"manager_id" table:"hotels"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN hotels ON hotels.id = rooms.hotel_id"
}
