// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"github.com/shopspring/decimal"
)

type CheckoutDTO struct {
	PayerName  string `json:"payer_name" validate:"required,max=80"`
	PayerEmail string `json:"payer_email" validate:"required,email"`
}

type CheckoutResponse struct {
	SnapToken string `json:"snap_token"`
}

type CashPaymentDTO struct {
	Amount decimal.Decimal `json:"amount"`
}
