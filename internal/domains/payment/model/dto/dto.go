package dto

import (
	"stay/internal/domains/payment/model"
	"stay/shared"
	"stay/shared/timezone"
	"time"

	gDto "stay/shared/dto"
	gModel "stay/shared/model"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	BookingID     string  `json:"booking_id"     validate:"required"`
	AmountPaid    float64 `json:"amount_paid"    validate:"required,gt=0"`
	PaymentStatus string  `json:"payment_status" validate:"required,oneof=paid pending canceled unpaid"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=credit_card debit_card upi paypal cash"`
	TransactionID string  `json:"transaction_id" validate:"required,max=100"`
}

func (c *CreatePaymentRequest) ToModel(user string) model.Payment {
	return model.Payment{
		ID:            uuid.NewString(),
		BookingID:     c.BookingID,
		UserID:        user,
		AmountPaid:    c.AmountPaid,
		PaymentStatus: c.PaymentStatus,
		PaymentMethod: c.PaymentMethod,
		TransactionID: c.TransactionID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	UserID        string  `json:"user_id"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.UserID = model.UserID
	r.AmountPaid = model.AmountPaid
	r.PaymentStatus = model.PaymentStatus
	r.PaymentMethod = model.PaymentMethod
	r.TransactionID = model.TransactionID
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

type PaymentEvent struct {
	PaymentID     string  `json:"payment_id"`
	BookingID     string  `json:"booking_id"`
	UserID        string  `json:"user_id"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
	OccurredAt    string  `json:"occurred_at"`
}

func NewPaymentEvent(payment model.Payment) PaymentEvent {
	return PaymentEvent{
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		UserID:        payment.UserID,
		AmountPaid:    payment.AmountPaid,
		PaymentStatus: payment.PaymentStatus,
		PaymentMethod: payment.PaymentMethod,
		TransactionID: payment.TransactionID,
		OccurredAt:    timezone.Now().Format(time.RFC3339),
	}
}
