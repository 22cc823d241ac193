package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/constants"
	feeRoute "schooldesk_backend/internals/features/finance/fees/route"
	feeService "schooldesk_backend/internals/features/finance/fees/service"
	publicRoute "schooldesk_backend/internals/features/public/route"
	admissionRoute "schooldesk_backend/internals/features/school/admissions/route"
	assignmentRoute "schooldesk_backend/internals/features/school/assignments/route"
	attendanceRoute "schooldesk_backend/internals/features/school/attendance/route"
	classRoute "schooldesk_backend/internals/features/school/classes/main/route"
	classworkRoute "schooldesk_backend/internals/features/school/classwork/route"
	dashboardRoute "schooldesk_backend/internals/features/school/dashboard/route"
	feedbackRoute "schooldesk_backend/internals/features/school/feedback/route"
	idCardRoute "schooldesk_backend/internals/features/school/id_cards/route"
	interactiveRoute "schooldesk_backend/internals/features/school/interactive_assignments/route"
	parentFeedbackRoute "schooldesk_backend/internals/features/school/parent_feedback/route"
	slipRoute "schooldesk_backend/internals/features/school/slips/route"
	sportsRoute "schooldesk_backend/internals/features/school/sports_enrollments/route"
	studentRoute "schooldesk_backend/internals/features/school/students/route"
	authRoute "schooldesk_backend/internals/features/users/auth/route"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	"schooldesk_backend/internals/helpers/cache"
	helperOSS "schooldesk_backend/internals/helpers/oss"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// Deps: dependency eksternal yang sudah diinisialisasi main.
type Deps struct {
	DB        *gorm.DB
	Cache     cache.Store
	Blob      helperOSS.BlobService     // nil kalau OSS belum dikonfigurasi
	Gateway   feeService.PaymentGateway // nil kalau Midtrans belum dikonfigurasi
	ServerKey string
}

func SetupRoutes(app *fiber.App, d Deps) {
	db := d.DB
	blacklist := helperAuth.NewGormBlacklist(db, configs.JWTSecret)

	authMw := authMiddleware.AuthMiddleware(authMiddleware.Config{
		Secret:    configs.JWTSecret,
		Blacklist: blacklist,
	})
	// bentuk lama {error} untuk /api/u/students
	legacyAuthMw := authMiddleware.AuthMiddleware(authMiddleware.Config{
		Secret:    configs.JWTSecret,
		Blacklist: blacklist,
		Unauthorized: func(c *fiber.Ctx, msg string) error {
			return helper.LegacyError(c, fiber.StatusUnauthorized, msg)
		},
	})

	log.Info().Msg("setting up base routes")
	BaseRoutes(app)

	// ===================== AUTH =====================
	authRoute.AuthRoutes(app, db, authMw)

	// webhook + legacy sebelum group /api/u supaya tidak kena authMw standar
	feeRoute.FeePublicRoutes(app, db, d.Gateway, d.ServerKey)
	studentRoute.LegacyStudentRoutes(app, db, legacyAuthMw)

	// ===================== PUBLIC =====================
	public := app.Group("/api/public")
	publicRoute.PublicRoutes(public, d.Cache)
	interactiveRoute.InteractiveAssignmentPublicRoutes(public, db)
	sportsRoute.SportsEnrollmentPublicRoutes(public, db)
	admissionRoute.AdmissionPublicRoutes(public, db, d.Blob)
	parentFeedbackRoute.ParentFeedbackPublicRoutes(public, db, d.Blob)

	// ===================== USER (semua role) =====================
	user := app.Group("/api/u", authMw)
	classRoute.ClassUserRoutes(user, db, d.Cache)
	studentRoute.StudentUserRoutes(user, db)
	assignmentRoute.AssignmentUserRoutes(user, db, d.Blob)
	interactiveRoute.InteractiveAssignmentUserRoutes(user, db)
	attendanceRoute.AttendanceUserRoutes(user, db)
	feeRoute.FeeUserRoutes(user, db, d.Gateway, d.ServerKey)
	feedbackRoute.FeedbackUserRoutes(user, db)
	classworkRoute.ClassworkUserRoutes(user, db, d.Blob)
	parentFeedbackRoute.ParentFeedbackUserRoutes(user, db, d.Blob)
	dashboardRoute.DashboardUserRoutes(user, db, d.Cache)

	// ===================== STAFF (TEACHER & ADMIN) =====================
	staff := app.Group("/api/a", authMw,
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("area staff"), constants.TeacherAndAbove...))
	authRoute.UserAdminRoutes(staff, db)
	classRoute.ClassAdminRoutes(staff, db, d.Cache)
	studentRoute.StudentAdminRoutes(staff, db)
	assignmentRoute.AssignmentTeacherRoutes(staff, db, d.Blob)
	interactiveRoute.InteractiveAssignmentTeacherRoutes(staff, db)
	attendanceRoute.AttendanceTeacherRoutes(staff, db)
	feeRoute.FeeAdminRoutes(staff, db, d.Gateway, d.ServerKey)
	feedbackRoute.FeedbackStaffRoutes(staff, db)
	slipRoute.SlipAdminRoutes(staff, db)
	idCardRoute.IDCardAdminRoutes(staff, db, d.Blob)
	sportsRoute.SportsEnrollmentAdminRoutes(staff, db)
	admissionRoute.AdmissionStaffRoutes(staff, db, d.Blob)
	classworkRoute.ClassworkTeacherRoutes(staff, db, d.Blob)
	parentFeedbackRoute.ParentFeedbackTeacherRoutes(staff, db, d.Blob)
	dashboardRoute.DashboardStaffRoutes(staff, db, d.Cache)

	log.Info().Msg("routes mounted")
}
