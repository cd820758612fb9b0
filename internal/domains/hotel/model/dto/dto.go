package dto

import (
	"stay/internal/domains/hotel/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gModel "stay/shared/model"
	"stay/shared/timezone"

	"github.com/google/uuid"
)

type CreateHotelRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty"`
	Address     string  `json:"address"     validate:"required,max=255"`
	Mobile      string  `json:"mobile"      validate:"required,max=20"`
	Email       string  `json:"email"       validate:"required,email,max=100"`
	Status      string  `json:"status"      validate:"omitempty,oneof=available booked under_maintenance closed"`
}

func (c *CreateHotelRequest) ToModel(managerID string) model.Hotel {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Hotel{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		Mobile:      c.Mobile,
		Email:       c.Email,
		Status:      status,
		ManagerID:   managerID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  managerID,
			ModifiedBy: managerID,
		},
	}
}

type UpdateHotelRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty"`
	Address     string `db:"address"     json:"address"     validate:"omitempty,max=255"`
	Mobile      string `db:"mobile"      json:"mobile"      validate:"omitempty,max=20"`
	Email       string `db:"email"       json:"email"       validate:"omitempty,email,max=100"`
	Status      string `db:"status"      json:"status"      validate:"omitempty,oneof=available booked under_maintenance closed"`
}

type HotelResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	Mobile      string  `json:"mobile"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
	ManagerID   string  `json:"manager_id"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Address = model.Address
	r.Mobile = model.Mobile
	r.Email = model.Email
	r.Status = model.Status
	r.ManagerID = model.ManagerID
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
