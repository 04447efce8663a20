// file: internals/features/finance/reconciliation/dto/reconciliation_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	recon "sekolahku_backend/internals/features/finance/reconciliation/model"
)

////////////////////////////////////////////////////////////////////////////////
// CASH SHIFT — DTO
////////////////////////////////////////////////////////////////////////////////

type OpenShiftDTO struct {
	// kosong → pakai set denominasi default
	Denominations []int64 `json:"denominations" validate:"omitempty,min=1,dive,gt=0"`
}

type ShiftResponse struct {
	CashShiftID       uuid.UUID             `json:"cash_shift_id"`
	CashShiftSchoolID uuid.UUID             `json:"cash_shift_school_id"`
	CashShiftStatus   recon.CashShiftStatus `json:"cash_shift_status"`
	CashShiftOpenedAt time.Time             `json:"cash_shift_opened_at"`
	CashShiftClosedAt *time.Time            `json:"cash_shift_closed_at,omitempty"`
	Denominations     []int64               `json:"denominations"`
}

func ToShiftResponse(m recon.CashShiftModel) ShiftResponse {
	return ShiftResponse{
		CashShiftID:       m.CashShiftID,
		CashShiftSchoolID: m.CashShiftSchoolID,
		CashShiftStatus:   m.CashShiftStatus,
		CashShiftOpenedAt: m.CashShiftOpenedAt,
		CashShiftClosedAt: m.CashShiftClosedAt,
		Denominations:     []int64(m.CashShiftDenominations),
	}
}

////////////////////////////////////////////////////////////////////////////////
// CLOSE — DTO
////////////////////////////////////////////////////////////////////////////////

// DenominationCountDTO: satu baris blind count fisik.
type DenominationCountDTO struct {
	DenominationValue int64 `json:"denomination_value" validate:"required,gt=0"`
	Quantity          int64 `json:"quantity" validate:"min=0"`
}

// CloseShiftDTO: deklarasi operator, diisi TANPA melihat total sistem.
// Total digital dijumlah manual dari slip/voucher per channel.
type CloseShiftDTO struct {
	DeclaredCashCounts   []DenominationCountDTO `json:"declared_cash_counts" validate:"dive"`
	DeclaredCardTerminal decimal.Decimal        `json:"declared_card_terminal"`
	DeclaredBankTransfer decimal.Decimal        `json:"declared_bank_transfer"`
	DeclaredMobileWallet decimal.Decimal        `json:"declared_mobile_wallet"`
}

type ReportResponse struct {
	ReconciliationReportID      uuid.UUID `json:"reconciliation_report_id"`
	ReconciliationReportShiftID uuid.UUID `json:"reconciliation_report_shift_id"`

	Declared json.RawMessage `json:"declared"`
	System   json.RawMessage `json:"system"`
	Variance json.RawMessage `json:"variance"`

	VarianceTotal decimal.Decimal            `json:"variance_total"`
	Status        recon.ReconciliationStatus `json:"status"`
	CreatedAt     time.Time                  `json:"created_at"`
}

func ToReportResponse(m recon.ReconciliationReportModel) ReportResponse {
	return ReportResponse{
		ReconciliationReportID:      m.ReconciliationReportID,
		ReconciliationReportShiftID: m.ReconciliationReportShiftID,
		Declared:                    json.RawMessage(m.ReconciliationReportDeclared),
		System:                      json.RawMessage(m.ReconciliationReportSystem),
		Variance:                    json.RawMessage(m.ReconciliationReportVariance),
		VarianceTotal:               m.ReconciliationReportVarianceTotal,
		Status:                      m.ReconciliationReportStatus,
		CreatedAt:                   m.ReconciliationReportCreatedAt,
	}
}
