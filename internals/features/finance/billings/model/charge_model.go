// file: internals/features/finance/billings/model/charge_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- ENUM charge_status -------------------------------------------------------
type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "pending"
	ChargeStatusPaid    ChargeStatus = "paid"
	ChargeStatusVoid    ChargeStatus = "void"
)

// --- MODEL charges ------------------------------------------------------------
// Dibuat HANYA oleh schedule generator (atau override manual di luar engine).
// Invariant: unik per (school, student, billing_year, billing_month) — generator
// tidak boleh insert charge kedua untuk periode yang sudah ada, apapun sebabnya
// (manual, batch retry, re-run). Dijaga unique index + ON CONFLICT DO NOTHING.
type ChargeModel struct {
	ChargeID       uuid.UUID `json:"charge_id" gorm:"column:charge_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ChargeSchoolID uuid.UUID `json:"charge_school_id" gorm:"column:charge_school_id;type:uuid;not null;uniqueIndex:uq_charges_period,priority:1"`

	ChargeStudentID    uuid.UUID  `json:"charge_student_id" gorm:"column:charge_student_id;type:uuid;not null;uniqueIndex:uq_charges_period,priority:2"`
	ChargeClassID      uuid.UUID  `json:"charge_class_id" gorm:"column:charge_class_id;type:uuid;not null;index"`
	ChargeEnrollmentID *uuid.UUID `json:"charge_enrollment_id,omitempty" gorm:"column:charge_enrollment_id;type:uuid;index"`
	ChargePriceRuleID  *uuid.UUID `json:"charge_price_rule_id,omitempty" gorm:"column:charge_price_rule_id;type:uuid;index"`

	ChargeBillingYear  int `json:"charge_billing_year" gorm:"column:charge_billing_year;type:smallint;not null;uniqueIndex:uq_charges_period,priority:3"`
	ChargeBillingMonth int `json:"charge_billing_month" gorm:"column:charge_billing_month;type:smallint;not null;check:charge_billing_month >= 1 AND charge_billing_month <= 12;uniqueIndex:uq_charges_period,priority:4"`

	ChargeAmount  decimal.Decimal `json:"charge_amount" gorm:"column:charge_amount;type:decimal(12,2);not null"`
	ChargeDueDate time.Time       `json:"charge_due_date" gorm:"column:charge_due_date;type:date;not null"`

	ChargeStatus ChargeStatus `json:"charge_status" gorm:"column:charge_status;type:varchar(20);not null;default:'pending';index:ix_charges_status"`
	ChargePaidAt *time.Time   `json:"charge_paid_at,omitempty" gorm:"column:charge_paid_at;type:timestamptz"`

	ChargeCreatedAt time.Time      `json:"charge_created_at" gorm:"column:charge_created_at;type:timestamptz;not null;autoCreateTime"`
	ChargeUpdatedAt time.Time      `json:"charge_updated_at" gorm:"column:charge_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ChargeDeletedAt gorm.DeletedAt `json:"charge_deleted_at,omitempty" gorm:"column:charge_deleted_at;type:timestamptz;index"`
}

func (ChargeModel) TableName() string { return "charges" }
