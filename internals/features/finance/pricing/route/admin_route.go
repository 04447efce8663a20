// file: internals/features/finance/pricing/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pricingctl "sekolahku_backend/internals/features/finance/pricing/controller"
)

// PricingAdminRoutes: CRUD + resolve tarif (staff only, tenant-scoped)
func PricingAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := pricingctl.NewPriceRuleHandler(db)

	g := r.Group("/:school_id/billing/price-rules")
	g.Post("/", h.CreatePriceRule)
	g.Get("/", h.ListPriceRules)
	g.Get("/resolve", h.ResolvePrice)
	g.Delete("/:id", h.DeletePriceRule)
}
