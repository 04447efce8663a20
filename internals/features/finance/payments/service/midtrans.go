// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	billingModel "sekolahku_backend/internals/features/finance/billings/model"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string, useProd bool) {
	if useProd {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

// GenerateChargeSnapToken membuat token Snap untuk satu charge SPP.
// Order ID = charge_id supaya webhook bisa map balik 1:1.
func GenerateChargeSnapToken(ch billingModel.ChargeModel, payerName, payerEmail string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  ch.ChargeID.String(),
			GrossAmt: ch.ChargeAmount.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Email: payerEmail,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
