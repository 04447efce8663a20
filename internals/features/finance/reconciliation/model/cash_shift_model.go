// file: internals/features/finance/reconciliation/model/cash_shift_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// --- ENUM cash_shift_status ---------------------------------------------------
type CashShiftStatus string

const (
	CashShiftStatusCounting CashShiftStatus = "counting"
	CashShiftStatusClosed   CashShiftStatus = "closed"
)

// --- MODEL cash_shifts --------------------------------------------------------
// Satu shift kasir. COUNTING → CLOSED, terminal: tidak ada reopen — shift baru
// berarti instance baru. Denominasi fisik di-freeze per shift supaya hitungan
// blind count konsisten walau set denominasi tenant berubah.
type CashShiftModel struct {
	CashShiftID       uuid.UUID `json:"cash_shift_id" gorm:"column:cash_shift_id;type:uuid;default:gen_random_uuid();primaryKey"`
	CashShiftSchoolID uuid.UUID `json:"cash_shift_school_id" gorm:"column:cash_shift_school_id;type:uuid;not null;index:idx_cash_shifts_school"`

	CashShiftOpenedByUserID uuid.UUID `json:"cash_shift_opened_by_user_id" gorm:"column:cash_shift_opened_by_user_id;type:uuid;not null"`

	CashShiftStatus   CashShiftStatus `json:"cash_shift_status" gorm:"column:cash_shift_status;type:varchar(20);not null;default:'counting';index"`
	CashShiftOpenedAt time.Time       `json:"cash_shift_opened_at" gorm:"column:cash_shift_opened_at;type:timestamptz;not null"`
	CashShiftClosedAt *time.Time      `json:"cash_shift_closed_at,omitempty" gorm:"column:cash_shift_closed_at;type:timestamptz"`

	// Set denominasi tunai (nilai rupiah per lembar/koin) yang dipakai shift ini
	CashShiftDenominations pq.Int64Array `json:"cash_shift_denominations" gorm:"column:cash_shift_denominations;type:bigint[];not null"`

	CashShiftCreatedAt time.Time `json:"cash_shift_created_at" gorm:"column:cash_shift_created_at;type:timestamptz;not null;autoCreateTime"`
	CashShiftUpdatedAt time.Time `json:"cash_shift_updated_at" gorm:"column:cash_shift_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (CashShiftModel) TableName() string { return "cash_shifts" }

// DefaultDenominations: pecahan rupiah standar (nilai penuh, bukan sen).
var DefaultDenominations = pq.Int64Array{100000, 50000, 20000, 10000, 5000, 2000, 1000, 500, 200, 100}
