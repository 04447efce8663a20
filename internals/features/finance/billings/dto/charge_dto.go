// file: internals/features/finance/billings/dto/charge_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billing "sekolahku_backend/internals/features/finance/billings/model"
)

////////////////////////////////////////////////////////////////////////////////
// CHARGES — DTO
////////////////////////////////////////////////////////////////////////////////

type ChargeResponse struct {
	ChargeID       uuid.UUID `json:"charge_id"`
	ChargeSchoolID uuid.UUID `json:"charge_school_id"`

	ChargeStudentID    uuid.UUID  `json:"charge_student_id"`
	ChargeClassID      uuid.UUID  `json:"charge_class_id"`
	ChargeEnrollmentID *uuid.UUID `json:"charge_enrollment_id,omitempty"`
	ChargePriceRuleID  *uuid.UUID `json:"charge_price_rule_id,omitempty"`

	ChargeBillingYear  int             `json:"charge_billing_year"`
	ChargeBillingMonth int             `json:"charge_billing_month"`
	ChargeAmount       decimal.Decimal `json:"charge_amount"`
	ChargeDueDate      time.Time       `json:"charge_due_date"`

	ChargeStatus billing.ChargeStatus `json:"charge_status"`
	ChargePaidAt *time.Time           `json:"charge_paid_at,omitempty"`

	ChargeCreatedAt time.Time `json:"charge_created_at"`
}

func ToChargeResponse(m billing.ChargeModel) ChargeResponse {
	return ChargeResponse{
		ChargeID:           m.ChargeID,
		ChargeSchoolID:     m.ChargeSchoolID,
		ChargeStudentID:    m.ChargeStudentID,
		ChargeClassID:      m.ChargeClassID,
		ChargeEnrollmentID: m.ChargeEnrollmentID,
		ChargePriceRuleID:  m.ChargePriceRuleID,
		ChargeBillingYear:  m.ChargeBillingYear,
		ChargeBillingMonth: m.ChargeBillingMonth,
		ChargeAmount:       m.ChargeAmount,
		ChargeDueDate:      m.ChargeDueDate,
		ChargeStatus:       m.ChargeStatus,
		ChargePaidAt:       m.ChargePaidAt,
		ChargeCreatedAt:    m.ChargeCreatedAt,
	}
}

func ToChargeResponses(ms []billing.ChargeModel) []ChargeResponse {
	out := make([]ChargeResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToChargeResponse(m))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// BATCH — DTO
////////////////////////////////////////////////////////////////////////////////

type RunCycleDTO struct {
	TargetYear  int `json:"target_year" validate:"required,min=2000,max=2100"`
	TargetMonth int `json:"target_month" validate:"required,min=1,max=12"`
}

type GenerateScheduleDTO struct {
	Mode string `json:"mode" validate:"omitempty,oneof=current_month_only through_session_end"`
}

type GenerateScheduleResponse struct {
	Generated int              `json:"generated"`
	Skipped   int              `json:"skipped"`
	Charges   []ChargeResponse `json:"charges"`
}
