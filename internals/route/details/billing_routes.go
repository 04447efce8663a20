// file: internals/route/details/billing_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoute "sekolahku_backend/internals/features/finance/billings/route"
	paymentRoute "sekolahku_backend/internals/features/finance/payments/route"
	pricingRoute "sekolahku_backend/internals/features/finance/pricing/route"
	reconRoute "sekolahku_backend/internals/features/finance/reconciliation/route"
)

// BillingAdminRoutes: semua operasi penagihan SPP (staff, tenant-scoped).
func BillingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	pricingRoute.PricingAdminRoutes(admin, db)
	billingRoute.BillingAdminRoutes(admin, db)
	reconRoute.ReconciliationAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
}

// BillingPublicRoutes: webhook gateway (tanpa JWT).
func BillingPublicRoutes(public fiber.Router, db *gorm.DB) {
	paymentRoute.PaymentPublicRoutes(public, db)
}
