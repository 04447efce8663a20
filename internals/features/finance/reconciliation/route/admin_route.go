// file: internals/features/finance/reconciliation/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reconctl "sekolahku_backend/internals/features/finance/reconciliation/controller"
)

// ReconciliationAdminRoutes: buka/tutup shift kas + laporan rekonsiliasi
func ReconciliationAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := reconctl.NewCashShiftHandler(db)

	g := r.Group("/:school_id/cash-shifts")
	g.Post("/", h.OpenShift)
	g.Post("/:id/close", h.CloseShift)
	g.Get("/:id/report", h.GetShiftReport)
}
