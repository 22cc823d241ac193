package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/users/auth/controller"
	rateLimiter "schooldesk_backend/internals/middlewares"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// AuthRoutes: /api/auth (public + me/logout di belakang authMw)
func AuthRoutes(app *fiber.App, db *gorm.DB, authMw fiber.Handler) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/logout", ctrl.Logout)
	auth.Get("/me", authMw, ctrl.Me)
}

// UserAdminRoutes: /api/a/users (ADMIN)
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	users := r.Group("/users", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("users"), constants.AdminOnly...))
	users.Get("/", ctrl.ListUsers)
	users.Get("/:id", ctrl.GetUser)
	users.Patch("/:id/role", ctrl.UpdateUserRole)
}
