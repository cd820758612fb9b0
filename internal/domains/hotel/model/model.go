package model

import "stay/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldMobile      = "mobile"
	FieldEmail       = "email"
	FieldStatus      = "status"
	FieldManagerID   = "manager_id"

	StatusAvailable        = "available"
	StatusBooked           = "booked"
	StatusUnderMaintenance = "under_maintenance"
	StatusClosed           = "closed"
)

type Hotel struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Address     string  `db:"address"`
	Mobile      string  `db:"mobile"`
	Email       string  `db:"email"`
	Status      string  `db:"status"`
	ManagerID   string  `db:"manager_id"`
	model.Metadata
}
