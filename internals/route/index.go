// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"schoolerp_backend/internals/configs"
	academicRoute "schoolerp_backend/internals/features/academics/route"
	consentRoute "schoolerp_backend/internals/features/consent/route"
	dashboardRoute "schoolerp_backend/internals/features/dashboard/route"
	disciplineRoute "schoolerp_backend/internals/features/discipline/route"
	examRoute "schoolerp_backend/internals/features/exams/route"
	feeRoute "schoolerp_backend/internals/features/fees/route"
	feeService "schoolerp_backend/internals/features/fees/service"
	frontOfficeRoute "schoolerp_backend/internals/features/frontoffice/route"
	homeworkRoute "schoolerp_backend/internals/features/homework/route"
	hrRoute "schoolerp_backend/internals/features/hr/route"
	inventoryRoute "schoolerp_backend/internals/features/inventory/route"
	libraryRoute "schoolerp_backend/internals/features/library/route"
	noticeRoute "schoolerp_backend/internals/features/notices/route"
	schoolRoute "schoolerp_backend/internals/features/schools/route"
	studentRoute "schoolerp_backend/internals/features/students/route"
	authController "schoolerp_backend/internals/features/users/auth/controller"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	authRoute "schoolerp_backend/internals/features/users/auth/route"
	authService "schoolerp_backend/internals/features/users/auth/service"
	userRoute "schoolerp_backend/internals/features/users/user/route"
	mailer "schoolerp_backend/internals/helpers/mail"
	helperOSS "schoolerp_backend/internals/helpers/oss"
	schoolMiddleware "schoolerp_backend/internals/middlewares/auth_school"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// Deps are the long-lived collaborators the handlers need.
type Deps struct {
	Backend   resource.Backend
	Objects   helperOSS.ObjectStore  // nil disables uploads (503)
	Snap      feeService.SnapGateway // nil disables online checkout (503)
	Mailer    mailer.Mailer
	Blacklist authRepo.Blacklist
	Ping      Pinger
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, d.Backend.Name(), d.Ping)

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	svc := authService.NewAuthService(d.Backend, d.Blacklist, d.Mailer)
	ac := authController.NewAuthController(svc)
	authRoute.AuthRoutes(app.Group("/api/auth"), ac)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	feeRoute.FeePublicRoutes(public, d.Backend)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api",
		schoolMiddleware.AuthJWT(schoolMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			BlacklistChecker:    svc.IsBlacklisted,
			AllowCookieFallback: true,
		}),
	)

	authRoute.AuthProtectedRoutes(private.Group("/auth"), ac)

	log.Println("[INFO] Mounting module routes...")
	schoolRoute.SchoolRoutes(private, d.Backend)
	userRoute.UserRoutes(private, d.Backend)
	academicRoute.AcademicRoutes(private, d.Backend)
	studentRoute.StudentRoutes(private, d.Backend, d.Objects)
	hrRoute.HRRoutes(private, d.Backend)
	feeRoute.FeeRoutes(private, d.Backend, d.Snap)
	libraryRoute.LibraryRoutes(private, d.Backend)
	inventoryRoute.InventoryRoutes(private, d.Backend)
	frontOfficeRoute.FrontOfficeRoutes(private, d.Backend)
	disciplineRoute.DisciplineRoutes(private, d.Backend)
	homeworkRoute.HomeworkRoutes(private, d.Backend, d.Objects)
	examRoute.ExamRoutes(private, d.Backend)
	noticeRoute.NoticeRoutes(private, d.Backend)
	consentRoute.ConsentRoutes(private, d.Backend)
	dashboardRoute.DashboardRoutes(private, d.Backend)
}
