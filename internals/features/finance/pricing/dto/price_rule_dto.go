// file: internals/features/finance/pricing/dto/price_rule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pricing "sekolahku_backend/internals/features/finance/pricing/model"
)

////////////////////////////////////////////////////////////////////////////////
// PRICE RULES — DTO
////////////////////////////////////////////////////////////////////////////////

// Create
type PriceRuleCreateDTO struct {
	PriceRuleSchoolID     uuid.UUID `json:"price_rule_school_id"` // selalu dioverride dari token
	PriceRuleAcademicYear int       `json:"price_rule_academic_year" validate:"required,min=2000,max=2100"`

	PriceRuleCourseID *uuid.UUID `json:"price_rule_course_id,omitempty"`
	PriceRuleClassID  *uuid.UUID `json:"price_rule_class_id,omitempty"`

	PriceRuleEnrollmentFee decimal.Decimal `json:"price_rule_enrollment_fee"`
	PriceRuleMonthlyFee    decimal.Decimal `json:"price_rule_monthly_fee"`
	PriceRuleDueDay        int             `json:"price_rule_due_day" validate:"required,min=1,max=31"`
}

// Response
type PriceRuleResponse struct {
	PriceRuleID           uuid.UUID  `json:"price_rule_id"`
	PriceRuleSchoolID     uuid.UUID  `json:"price_rule_school_id"`
	PriceRuleAcademicYear int        `json:"price_rule_academic_year"`
	PriceRuleCourseID     *uuid.UUID `json:"price_rule_course_id,omitempty"`
	PriceRuleClassID      *uuid.UUID `json:"price_rule_class_id,omitempty"`

	PriceRuleEnrollmentFee decimal.Decimal `json:"price_rule_enrollment_fee"`
	PriceRuleMonthlyFee    decimal.Decimal `json:"price_rule_monthly_fee"`
	PriceRuleDueDay        int             `json:"price_rule_due_day"`

	PriceRuleCreatedAt time.Time `json:"price_rule_created_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func PriceRuleCreateDTOToModel(in PriceRuleCreateDTO) pricing.PriceRuleModel {
	return pricing.PriceRuleModel{
		PriceRuleSchoolID:      in.PriceRuleSchoolID,
		PriceRuleAcademicYear:  in.PriceRuleAcademicYear,
		PriceRuleCourseID:      in.PriceRuleCourseID,
		PriceRuleClassID:       in.PriceRuleClassID,
		PriceRuleEnrollmentFee: in.PriceRuleEnrollmentFee,
		PriceRuleMonthlyFee:    in.PriceRuleMonthlyFee,
		PriceRuleDueDay:        in.PriceRuleDueDay,
	}
}

func ToPriceRuleResponse(m pricing.PriceRuleModel) PriceRuleResponse {
	return PriceRuleResponse{
		PriceRuleID:            m.PriceRuleID,
		PriceRuleSchoolID:      m.PriceRuleSchoolID,
		PriceRuleAcademicYear:  m.PriceRuleAcademicYear,
		PriceRuleCourseID:      m.PriceRuleCourseID,
		PriceRuleClassID:       m.PriceRuleClassID,
		PriceRuleEnrollmentFee: m.PriceRuleEnrollmentFee,
		PriceRuleMonthlyFee:    m.PriceRuleMonthlyFee,
		PriceRuleDueDay:        m.PriceRuleDueDay,
		PriceRuleCreatedAt:     m.PriceRuleCreatedAt,
	}
}

func ToPriceRuleResponses(ms []pricing.PriceRuleModel) []PriceRuleResponse {
	out := make([]PriceRuleResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPriceRuleResponse(m))
	}
	return out
}
