package dto

import (
	"stay/internal/domains/user/model"
	gDto "stay/shared/dto"
)

type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Level    string  `json:"level"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}
