// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentctl "sekolahku_backend/internals/features/finance/payments/controller"
)

// PaymentAdminRoutes: checkout + pencatatan tunai (staff, tenant-scoped)
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := paymentctl.NewPaymentHandler(db)

	g := r.Group("/:school_id/payments")
	g.Post("/:charge_id/checkout", h.Checkout)
	g.Post("/:charge_id/cash", h.RecordCash)
}

// PaymentPublicRoutes: webhook gateway (dipanggil Midtrans, tanpa JWT)
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	h := paymentctl.NewPaymentHandler(db)
	r.Post("/payments/webhook/midtrans", h.MidtransWebhook)
}
