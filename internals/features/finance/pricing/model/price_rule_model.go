// file: internals/features/finance/pricing/model/price_rule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- MODEL price_rules --------------------------------------------------------
// Tarif per (school, tahun ajaran) dengan target opsional course/class.
// Invariant: per (school, year) maksimal satu rule untuk tiap kombinasi
// (course_id, class_id) — termasuk rule umum (keduanya NULL). Dijaga lewat
// partial unique index di SQL migrasi (NULL di Postgres tidak saling konflik
// di unique index biasa).
// Rule tidak pernah ditulis oleh engine; hanya lewat layar admin.
type PriceRuleModel struct {
	PriceRuleID       uuid.UUID `json:"price_rule_id" gorm:"column:price_rule_id;type:uuid;default:gen_random_uuid();primaryKey"`
	PriceRuleSchoolID uuid.UUID `json:"price_rule_school_id" gorm:"column:price_rule_school_id;type:uuid;not null;index:idx_price_rules_school_year,priority:1"`

	PriceRuleAcademicYear int `json:"price_rule_academic_year" gorm:"column:price_rule_academic_year;type:smallint;not null;index:idx_price_rules_school_year,priority:2"`

	// Target (keduanya NULL = rule umum tenant)
	PriceRuleCourseID *uuid.UUID `json:"price_rule_course_id,omitempty" gorm:"column:price_rule_course_id;type:uuid;index"`
	PriceRuleClassID  *uuid.UUID `json:"price_rule_class_id,omitempty" gorm:"column:price_rule_class_id;type:uuid;index"`

	// Nominal
	PriceRuleEnrollmentFee decimal.Decimal `json:"price_rule_enrollment_fee" gorm:"column:price_rule_enrollment_fee;type:decimal(12,2);not null"`
	PriceRuleMonthlyFee    decimal.Decimal `json:"price_rule_monthly_fee" gorm:"column:price_rule_monthly_fee;type:decimal(12,2);not null"`

	// Jatuh tempo bulanan (1..31, clamp ke akhir bulan saat generate)
	PriceRuleDueDay int `json:"price_rule_due_day" gorm:"column:price_rule_due_day;type:smallint;not null;default:10;check:price_rule_due_day >= 1 AND price_rule_due_day <= 31"`

	PriceRuleCreatedAt time.Time      `json:"price_rule_created_at" gorm:"column:price_rule_created_at;type:timestamptz;not null;autoCreateTime"`
	PriceRuleUpdatedAt time.Time      `json:"price_rule_updated_at" gorm:"column:price_rule_updated_at;type:timestamptz;not null;autoUpdateTime"`
	PriceRuleDeletedAt gorm.DeletedAt `json:"price_rule_deleted_at,omitempty" gorm:"column:price_rule_deleted_at;type:timestamptz;index"`
}

func (PriceRuleModel) TableName() string { return "price_rules" }
