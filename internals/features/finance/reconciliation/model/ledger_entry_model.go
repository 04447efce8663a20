// file: internals/features/finance/reconciliation/model/ledger_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- ENUM payment_channel -----------------------------------------------------
type PaymentChannel string

const (
	ChannelCash         PaymentChannel = "cash"
	ChannelCardTerminal PaymentChannel = "card_terminal"
	ChannelBankTransfer PaymentChannel = "bank_transfer"
	ChannelMobileWallet PaymentChannel = "mobile_wallet"
)

// AllChannels: urutan tetap untuk agregasi & laporan.
var AllChannels = []PaymentChannel{ChannelCash, ChannelCardTerminal, ChannelBankTransfer, ChannelMobileWallet}

// --- MODEL ledger_entries -----------------------------------------------------
// Append-only; ditulis saat pencatatan pembayaran harian, read-only untuk
// engine rekonsiliasi. Tidak ada update/soft-delete — koreksi lewat entry balik.
type LedgerEntryModel struct {
	LedgerEntryID       uuid.UUID `json:"ledger_entry_id" gorm:"column:ledger_entry_id;type:uuid;default:gen_random_uuid();primaryKey"`
	LedgerEntrySchoolID uuid.UUID `json:"ledger_entry_school_id" gorm:"column:ledger_entry_school_id;type:uuid;not null;index:idx_ledger_entries_school_recorded,priority:1"`

	LedgerEntryChannel PaymentChannel  `json:"ledger_entry_channel" gorm:"column:ledger_entry_channel;type:varchar(20);not null;index"`
	LedgerEntryAmount  decimal.Decimal `json:"ledger_entry_amount" gorm:"column:ledger_entry_amount;type:decimal(12,2);not null"`

	// Referensi opsional ke charge yang dibayar
	LedgerEntryChargeID *uuid.UUID `json:"ledger_entry_charge_id,omitempty" gorm:"column:ledger_entry_charge_id;type:uuid;index"`
	LedgerEntryNote     *string    `json:"ledger_entry_note,omitempty" gorm:"column:ledger_entry_note;type:text"`

	LedgerEntryRecordedAt time.Time `json:"ledger_entry_recorded_at" gorm:"column:ledger_entry_recorded_at;type:timestamptz;not null;index:idx_ledger_entries_school_recorded,priority:2"`
	LedgerEntryCreatedAt  time.Time `json:"ledger_entry_created_at" gorm:"column:ledger_entry_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (LedgerEntryModel) TableName() string { return "ledger_entries" }
