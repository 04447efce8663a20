// file: internals/features/finance/billings/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingctl "sekolahku_backend/internals/features/finance/billings/controller"
	"sekolahku_backend/internals/configs"
)

// BillingAdminRoutes: run-cycle, generate per enrollment, list charges
func BillingAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := billingctl.NewBillingHandler(db, configs.BillingWorkers)

	g := r.Group("/:school_id/billing")
	g.Post("/run-cycle", h.RunCycle)
	g.Post("/enrollments/:id/generate", h.GenerateForEnrollment)
	g.Get("/charges", h.ListCharges)
}
