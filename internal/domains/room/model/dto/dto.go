package dto

import (
	"stay/internal/domains/room/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber  int     `json:"room_number"  validate:"required,gt=0"`
	RoomType    string  `json:"room_type"    validate:"required,oneof=standard deluxe suite dormitory"`
	Price       float64 `json:"price"        validate:"required,gt=0"`
	Capacity    int     `json:"capacity"     validate:"required,gt=0"`
	IsAvailable *bool   `json:"is_available" validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(hotelID, user string) model.Room {
	isAvailable := true
	if c.IsAvailable != nil {
		isAvailable = *c.IsAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		HotelID:     hotelID,
		RoomNumber:  c.RoomNumber,
		RoomType:    c.RoomType,
		Price:       c.Price,
		Capacity:    c.Capacity,
		IsAvailable: isAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateRoomsBulkRequest struct {
	Rooms []CreateRoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

func (c *CreateRoomsBulkRequest) ToModels(hotelID, user string) []model.Room {
	models := make([]model.Room, len(c.Rooms))
	for i := range c.Rooms {
		models[i] = c.Rooms[i].ToModel(hotelID, user)
	}

	return models
}

type UpdateRoomRequest struct {
	RoomType    string  `db:"room_type"    json:"room_type"    validate:"omitempty,oneof=standard deluxe suite dormitory"`
	Price       float64 `db:"price"        json:"price"        validate:"omitempty,gt=0"`
	Capacity    int     `db:"capacity"     json:"capacity"     validate:"omitempty,gt=0"`
	IsAvailable *bool   `db:"is_available" json:"is_available" validate:"omitempty"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	HotelID     string  `json:"hotel_id"`
	HotelName   string  `json:"hotel_name"`
	RoomNumber  int     `json:"room_number"`
	RoomType    string  `json:"room_type"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	IsAvailable bool    `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
