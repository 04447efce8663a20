// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolMiddleware "sekolahku_backend/internals/middlewares/auth_school"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (webhook gateway)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → JWT + tenant scope dicek per handler
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		schoolMiddleware.AuthJWT(schoolMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Billing routes...")
	routeDetails.BillingPublicRoutes(public, db)
	routeDetails.BillingAdminRoutes(admin, db)
}
