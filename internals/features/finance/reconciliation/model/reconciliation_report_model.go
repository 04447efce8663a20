// file: internals/features/finance/reconciliation/model/reconciliation_report_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// --- ENUM reconciliation_status -----------------------------------------------
type ReconciliationStatus string

const (
	ReconciliationStatusMatch     ReconciliationStatus = "MATCH"
	ReconciliationStatusDivergent ReconciliationStatus = "DIVERGENT"
)

// --- MODEL reconciliation_reports ----------------------------------------------
// Dibuat tepat SEKALI per penutupan shift; immutable setelah dibuat (penutupan
// baru = laporan baru, tidak pernah edit laporan lama). Unique di shift_id
// mencegah double-close menghasilkan dua laporan untuk ledger yang sama.
// Declared/system/variance per channel disimpan utuh sebagai JSON supaya
// divergensi antar-channel yang saling menutup tetap terlihat auditor.
type ReconciliationReportModel struct {
	ReconciliationReportID       uuid.UUID `json:"reconciliation_report_id" gorm:"column:reconciliation_report_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReconciliationReportSchoolID uuid.UUID `json:"reconciliation_report_school_id" gorm:"column:reconciliation_report_school_id;type:uuid;not null;index"`

	ReconciliationReportShiftID uuid.UUID `json:"reconciliation_report_shift_id" gorm:"column:reconciliation_report_shift_id;type:uuid;not null;uniqueIndex:uq_reconciliation_reports_shift"`

	ReconciliationReportDeclared datatypes.JSON `json:"reconciliation_report_declared" gorm:"column:reconciliation_report_declared;type:jsonb;not null"`
	ReconciliationReportSystem   datatypes.JSON `json:"reconciliation_report_system" gorm:"column:reconciliation_report_system;type:jsonb;not null"`
	ReconciliationReportVariance datatypes.JSON `json:"reconciliation_report_variance" gorm:"column:reconciliation_report_variance;type:jsonb;not null"`

	ReconciliationReportVarianceTotal decimal.Decimal      `json:"reconciliation_report_variance_total" gorm:"column:reconciliation_report_variance_total;type:decimal(12,2);not null"`
	ReconciliationReportStatus        ReconciliationStatus `json:"reconciliation_report_status" gorm:"column:reconciliation_report_status;type:varchar(12);not null"`

	ReconciliationReportCreatedAt time.Time `json:"reconciliation_report_created_at" gorm:"column:reconciliation_report_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (ReconciliationReportModel) TableName() string { return "reconciliation_reports" }
