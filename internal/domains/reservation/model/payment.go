package model

import (
	"mariachi/shared/model"
	"mariachi/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentTableName  = "reservation_payments"
	PaymentEntityName = "reservation_payment"

	FieldPaymentID            = "id"
	FieldPaymentReservationID = "reservation_id"
	FieldPaymentPaidAt        = "paid_at"
)

const (
	PaymentTypeDeposit     = "Anticipo"
	PaymentTypeInstallment = "Abono"
	PaymentTypeFinal       = "Saldo Final"
)

const (
	PaymentMethodCash     = "Efectivo"
	PaymentMethodTransfer = "Transferencia"
	PaymentMethodCard     = "Tarjeta"
)

type Payment struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	Amount        int64     `db:"amount"`
	Type          string    `db:"type"`
	Method        string    `db:"method"`
	PaidAt        time.Time `db:"paid_at"`
	Notes         string    `db:"notes"`
	model.Metadata
}

// NewSettlement is the cash payment that closes the balance of a reservation
// finalized after its event.
func NewSettlement(reservationID string, amount int64, user string) Payment {
	now := timezone.Now()

	return Payment{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		Amount:        amount,
		Type:          PaymentTypeFinal,
		Method:        PaymentMethodCash,
		PaidAt:        now,
		Notes:         "settled automatically after the event",
		Metadata:      model.NewMetadata(user, now),
	}
}
