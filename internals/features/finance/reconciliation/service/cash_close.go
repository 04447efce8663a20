// file: internals/features/finance/reconciliation/service/cash_close.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reconModel "sekolahku_backend/internals/features/finance/reconciliation/model"
)

var (
	// ErrShiftAlreadyClosed: shift terminal — tidak ada reopen, close kedua ditolak.
	ErrShiftAlreadyClosed = errors.New("cash shift already closed")
	// ErrLedgerFetchFailed: agregasi ledger gagal → transisi dibatalkan total,
	// operator tetap di COUNTING, tidak ada laporan parsial yang tersimpan.
	ErrLedgerFetchFailed = errors.New("ledger totals fetch failed")
)

// ChannelTotals: nominal per channel, selalu lengkap untuk keempat channel.
type ChannelTotals map[reconModel.PaymentChannel]decimal.Decimal

func NewChannelTotals() ChannelTotals {
	t := make(ChannelTotals, len(reconModel.AllChannels))
	for _, ch := range reconModel.AllChannels {
		t[ch] = decimal.Zero
	}
	return t
}

// CashTotal: Σ(nilai denominasi × jumlah lembar) — blind count fisik.
func CashTotal(counts map[int64]int64) decimal.Decimal {
	total := decimal.Zero
	for value, qty := range counts {
		if qty <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromInt(value).Mul(decimal.NewFromInt(qty)))
	}
	return total
}

// VarianceResult: hasil komparasi declared vs system.
type VarianceResult struct {
	Variance ChannelTotals
	Total    decimal.Decimal
	Status   reconModel.ReconciliationStatus
}

// ComputeVariance: variance[ch] = declared[ch] − system[ch]; pure, tanpa I/O.
//
// MATCH hanya kalau SEMUA channel variance-nya nol persis — total nol saja
// tidak cukup, karena selisih antar-channel yang saling menutup (satu lebih,
// satu kurang) tetap divergensi yang harus kelihatan auditor.
func ComputeVariance(declared, system ChannelTotals) VarianceResult {
	res := VarianceResult{
		Variance: NewChannelTotals(),
		Total:    decimal.Zero,
		Status:   reconModel.ReconciliationStatusMatch,
	}
	for _, ch := range reconModel.AllChannels {
		v := declared[ch].Sub(system[ch])
		res.Variance[ch] = v
		res.Total = res.Total.Add(v)
		if !v.IsZero() {
			res.Status = reconModel.ReconciliationStatusDivergent
		}
	}
	return res
}

func totalsToJSON(t ChannelTotals) ([]byte, error) {
	out := make(map[string]string, len(t))
	for ch, v := range t {
		out[string(ch)] = v.StringFixed(2)
	}
	return json.Marshal(out)
}

/* =======================================================
   CASH CLOSER — transisi COUNTING → CLOSED
======================================================= */

type CashCloser struct {
	DB *gorm.DB
}

func NewCashCloser(db *gorm.DB) *CashCloser {
	return &CashCloser{DB: db}
}

// ledgerTotals mengagregasi ledger per channel untuk jendela shift.
func (s *CashCloser) ledgerTotals(tx *gorm.DB, schoolID uuid.UUID, from, to time.Time) (ChannelTotals, error) {
	type row struct {
		Channel string
		Total   decimal.Decimal
	}
	var rows []row
	err := tx.Model(&reconModel.LedgerEntryModel{}).
		Select("ledger_entry_channel AS channel, COALESCE(SUM(ledger_entry_amount), 0) AS total").
		Where("ledger_entry_school_id = ?", schoolID).
		Where("ledger_entry_recorded_at >= ? AND ledger_entry_recorded_at < ?", from, to).
		Group("ledger_entry_channel").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerFetchFailed, err)
	}

	totals := NewChannelTotals()
	for _, r := range rows {
		totals[reconModel.PaymentChannel(r.Channel)] = r.Total
	}
	return totals, nil
}

// Close menjalankan transisi dua fase: declared dibandingkan dengan total
// sistem, laporan dipersist, shift dikunci. Semuanya dalam satu transaksi +
// row lock di shift — dua Close yang balapan untuk shift yang sama tidak
// mungkin menghasilkan dua laporan (unique di shift_id sebagai jaring kedua).
func (s *CashCloser) Close(ctx context.Context, schoolID, shiftID uuid.UUID, declared ChannelTotals, closedAt time.Time) (*reconModel.ReconciliationReportModel, error) {
	var report *reconModel.ReconciliationReportModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift reconModel.CashShiftModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cash_shift_id = ? AND cash_shift_school_id = ?", shiftID, schoolID).
			First(&shift).Error; err != nil {
			return err
		}
		if shift.CashShiftStatus != reconModel.CashShiftStatusCounting {
			return ErrShiftAlreadyClosed
		}

		system, err := s.ledgerTotals(tx, schoolID, shift.CashShiftOpenedAt, closedAt)
		if err != nil {
			// transisi TIDAK terjadi; rollback membiarkan shift tetap COUNTING
			return err
		}

		result := ComputeVariance(declared, system)

		declaredJSON, err := totalsToJSON(declared)
		if err != nil {
			return err
		}
		systemJSON, err := totalsToJSON(system)
		if err != nil {
			return err
		}
		varianceJSON, err := totalsToJSON(result.Variance)
		if err != nil {
			return err
		}

		rep := reconModel.ReconciliationReportModel{
			ReconciliationReportSchoolID:      schoolID,
			ReconciliationReportShiftID:       shift.CashShiftID,
			ReconciliationReportDeclared:      declaredJSON,
			ReconciliationReportSystem:        systemJSON,
			ReconciliationReportVariance:      varianceJSON,
			ReconciliationReportVarianceTotal: result.Total,
			ReconciliationReportStatus:        result.Status,
		}
		if err := tx.Create(&rep).Error; err != nil {
			return err
		}

		now := closedAt
		if err := tx.Model(&reconModel.CashShiftModel{}).
			Where("cash_shift_id = ?", shift.CashShiftID).
			Updates(map[string]any{
				"cash_shift_status":    reconModel.CashShiftStatusClosed,
				"cash_shift_closed_at": &now,
			}).Error; err != nil {
			return err
		}

		report = &rep
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
