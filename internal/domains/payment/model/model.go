package model

import "stay/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldUserID        = "user_id"
	FieldAmountPaid    = "amount_paid"
	FieldPaymentStatus = "payment_status"
	FieldPaymentMethod = "payment_method"
	FieldTransactionID = "transaction_id"

	StatusPaid     = "paid"
	StatusPending  = "pending"
	StatusCanceled = "canceled"
	StatusUnpaid   = "unpaid"

	MethodCreditCard = "credit_card"
	MethodDebitCard  = "debit_card"
	MethodUPI        = "upi"
	MethodPaypal     = "paypal"
	MethodCash       = "cash"
)

type Payment struct {
	ID            string  `db:"id"`
	BookingID     string  `db:"booking_id"`
	UserID        string  `db:"user_id"`
	AmountPaid    float64 `db:"amount_paid"`
	PaymentStatus string  `db:"payment_status"`
	PaymentMethod string  `db:"payment_method"`
	TransactionID string  `db:"transaction_id"`
	RoomID        string  `db:"room_id"    table:"bookings"`
	HotelID       string  `db:"hotel_id"   table:"rooms"`
	ManagerID     string  `db:"manager_id" table:"hotels"`
	model.Metadata
}

func (Payment) GetJoinQuery() string {
	return "JOIN bookings ON bookings.id = payments.booking_id " +
		"JOIN rooms ON rooms.id = bookings.room_id " +
		"JOIN hotels ON hotels.id = rooms.hotel_id"
}
