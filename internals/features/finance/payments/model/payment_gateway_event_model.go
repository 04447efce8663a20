// file: internals/features/finance/payments/model/payment_gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// --- MODEL payment_gateway_events ----------------------------------------------
// Log mentah notifikasi gateway (Midtrans) — audit trail, append-only.
type PaymentGatewayEventModel struct {
	PaymentGatewayEventID uuid.UUID `json:"payment_gateway_event_id" gorm:"column:payment_gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey"`

	PaymentGatewayEventOrderID string `json:"payment_gateway_event_order_id" gorm:"column:payment_gateway_event_order_id;type:varchar(64);not null;index"`
	PaymentGatewayEventStatus  string `json:"payment_gateway_event_status" gorm:"column:payment_gateway_event_status;type:varchar(30);not null"`

	PaymentGatewayEventPayload datatypes.JSON `json:"payment_gateway_event_payload" gorm:"column:payment_gateway_event_payload;type:jsonb;not null"`

	PaymentGatewayEventCreatedAt time.Time `json:"payment_gateway_event_created_at" gorm:"column:payment_gateway_event_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (PaymentGatewayEventModel) TableName() string { return "payment_gateway_events" }
