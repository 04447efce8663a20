// file: internals/features/finance/payments/service/webhook.go
package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	billingModel "sekolahku_backend/internals/features/finance/billings/model"
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
	reconModel "sekolahku_backend/internals/features/finance/reconciliation/model"
)

// channelForPaymentType memetakan payment_type Midtrans ke channel ledger.
func channelForPaymentType(paymentType string) reconModel.PaymentChannel {
	switch paymentType {
	case "credit_card":
		return reconModel.ChannelCardTerminal
	case "bank_transfer", "echannel", "permata":
		return reconModel.ChannelBankTransfer
	default: // gopay, qris, shopeepay, dll.
		return reconModel.ChannelMobileWallet
	}
}

// HandleChargeStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Settlement/capture → charge paid + satu ledger entry; status lain hanya dilog.
// Pencatatan pembayaran sengaja terpisah dari generate tagihan — kegagalan di
// sini tidak pernah tersembunyi di balik alur lain.
func HandleChargeStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	payload, _ := json.Marshal(body)
	event := paymentModel.PaymentGatewayEventModel{
		PaymentGatewayEventOrderID: orderID,
		PaymentGatewayEventStatus:  status,
		PaymentGatewayEventPayload: payload,
	}
	if err := db.Create(&event).Error; err != nil {
		log.Println("[WARN] Gagal log gateway event:", err)
	}

	if status != "capture" && status != "settlement" {
		return nil
	}

	chargeID, err := uuid.Parse(orderID)
	if err != nil {
		return fmt.Errorf("order_id %q is not a charge id", orderID)
	}

	paymentType, _ := body["payment_type"].(string)
	channel := channelForPaymentType(paymentType)

	return db.Transaction(func(tx *gorm.DB) error {
		var ch billingModel.ChargeModel
		if err := tx.Where("charge_id = ?", chargeID).First(&ch).Error; err != nil {
			return fmt.Errorf("charge %s not found", orderID)
		}
		if ch.ChargeStatus == billingModel.ChargeStatusPaid {
			// notifikasi ulang dari gateway — sudah dicatat, jangan dobel
			return nil
		}

		now := time.Now()
		if err := tx.Model(&billingModel.ChargeModel{}).
			Where("charge_id = ?", ch.ChargeID).
			Updates(map[string]any{
				"charge_status":  billingModel.ChargeStatusPaid,
				"charge_paid_at": &now,
			}).Error; err != nil {
			return err
		}

		cid := ch.ChargeID
		entry := reconModel.LedgerEntryModel{
			LedgerEntrySchoolID:   ch.ChargeSchoolID,
			LedgerEntryChannel:    channel,
			LedgerEntryAmount:     ch.ChargeAmount,
			LedgerEntryChargeID:   &cid,
			LedgerEntryRecordedAt: now,
		}
		return tx.Create(&entry).Error
	})
}

// RecordCashPayment mencatat pembayaran tunai di loket: charge paid + ledger
// entry channel cash (yang nanti direkonsiliasi terhadap blind count).
func RecordCashPayment(db *gorm.DB, schoolID, chargeID uuid.UUID, amount decimal.Decimal) (*reconModel.LedgerEntryModel, error) {
	var entry *reconModel.LedgerEntryModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var ch billingModel.ChargeModel
		if err := tx.
			Where("charge_id = ? AND charge_school_id = ?", chargeID, schoolID).
			First(&ch).Error; err != nil {
			return err
		}
		if ch.ChargeStatus == billingModel.ChargeStatusPaid {
			return fmt.Errorf("charge already paid")
		}
		if ch.ChargeStatus == billingModel.ChargeStatusVoid {
			return fmt.Errorf("charge is void")
		}

		now := time.Now()
		if err := tx.Model(&billingModel.ChargeModel{}).
			Where("charge_id = ?", ch.ChargeID).
			Updates(map[string]any{
				"charge_status":  billingModel.ChargeStatusPaid,
				"charge_paid_at": &now,
			}).Error; err != nil {
			return err
		}

		cid := ch.ChargeID
		e := reconModel.LedgerEntryModel{
			LedgerEntrySchoolID:   schoolID,
			LedgerEntryChannel:    reconModel.ChannelCash,
			LedgerEntryAmount:     amount,
			LedgerEntryChargeID:   &cid,
			LedgerEntryRecordedAt: now,
		}
		if err := tx.Create(&e).Error; err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
