package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"

	"schoolerp_backend/internals/configs"
	database "schoolerp_backend/internals/databases"
	classModel "schoolerp_backend/internals/features/academics/model"
	consentModel "schoolerp_backend/internals/features/consent/model"
	disciplineModel "schoolerp_backend/internals/features/discipline/model"
	examModel "schoolerp_backend/internals/features/exams/model"
	feeModel "schoolerp_backend/internals/features/fees/model"
	feeService "schoolerp_backend/internals/features/fees/service"
	frontModel "schoolerp_backend/internals/features/frontoffice/model"
	homeworkModel "schoolerp_backend/internals/features/homework/model"
	hrModel "schoolerp_backend/internals/features/hr/model"
	inventoryModel "schoolerp_backend/internals/features/inventory/model"
	libraryModel "schoolerp_backend/internals/features/library/model"
	libraryService "schoolerp_backend/internals/features/library/service"
	noticeModel "schoolerp_backend/internals/features/notices/model"
	schoolModel "schoolerp_backend/internals/features/schools/model"
	studentModel "schoolerp_backend/internals/features/students/model"
	authModel "schoolerp_backend/internals/features/users/auth/model"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	"schoolerp_backend/internals/features/users/auth/scheduler"
	userModel "schoolerp_backend/internals/features/users/user/model"
	mailer "schoolerp_backend/internals/helpers/mail"
	helperOSS "schoolerp_backend/internals/helpers/oss"
	"schoolerp_backend/internals/helpers/report"
	middlewares "schoolerp_backend/internals/middlewares"
	"schoolerp_backend/internals/middlewares/logger"
	"schoolerp_backend/internals/resource"
	routes "schoolerp_backend/internals/route"
	"schoolerp_backend/internals/seeds"
)

// allModels is the migration set; referenced tables come first.
func allModels() []any {
	return []any{
		&schoolModel.SchoolModel{},
		&hrModel.StaffModel{},
		&classModel.ClassModel{},
		&studentModel.StudentModel{},
		&userModel.UserModel{},
		&hrModel.LeaveRequestModel{},
		&feeModel.FeeStructureModel{},
		&feeModel.FeePaymentModel{},
		&libraryModel.BookModel{},
		&libraryModel.BookIssueModel{},
		&inventoryModel.InventoryItemModel{},
		&frontModel.VisitorModel{},
		&frontModel.EnquiryModel{},
		&disciplineModel.IncidentModel{},
		&homeworkModel.HomeworkModel{},
		&homeworkModel.SubmissionModel{},
		&examModel.ExamModel{},
		&examModel.ExamResultModel{},
		&noticeModel.NoticeModel{},
		&consentModel.ConsentLetterModel{},
		&authModel.TokenBlacklistModel{},
		&authModel.PasswordResetModel{},
	}
}

// openBackend connects the storage engine picked by DB_DRIVER.
func openBackend() (resource.Backend, routes.Pinger, func()) {
	switch configs.DBDriver {
	case "mongo", "mongodb":
		database.ConnectMongo()
		ping := func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) }
		return resource.NewMongoBackend(database.MongoDB), ping, database.DisconnectMongo
	case "memory":
		log.Println("⚠️ DB_DRIVER=memory, data is lost on restart")
		return resource.NewMemoryBackend(), nil, func() {}
	default:
		database.ConnectDB()
		database.TunePool()
		if err := database.Migrate(allModels()...); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
		database.WarmUpQueries()
		ping := func(ctx context.Context) error {
			sqlDB, err := database.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		return resource.NewGormBackend(database.DB), ping, database.CloseDB
	}
}

func main() {
	configs.LoadEnv()
	report.Init()
	defer report.Close()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            middlewares.ErrorHandler,
		BodyLimit:               12 * 1024 * 1024, // photo + attachment uploads
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.TrustedProxies,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + per-request timeout
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("request_id", id)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware())
	app.Use(middlewares.MetricsMiddleware())
	app.Use(middlewares.GlobalRateLimiter())

	be, ping, closeBackend := openBackend()
	database.ConnectRedis()

	objects, err := helperOSS.NewFromEnv("uploads")
	if err != nil {
		log.Printf("⚠️ Object storage disabled: %v", err)
		objects = nil
	}

	blacklist := authRepo.NewBlacklist(database.Redis, be)

	if configs.GetEnvBool("RUN_SEEDS", false) {
		seeds.RunAllSeeds(be)
	}

	routes.SetupRoutes(app, routes.Deps{
		Backend:   be,
		Objects:   objects,
		Snap:      feeService.NewSnapClient(configs.MidtransKey, configs.MidtransUseProd),
		Mailer:    mailer.NewFromEnv(),
		Blacklist: blacklist,
		Ping:      ping,
	})

	// ⏱ background jobs
	jobs := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	if err := libraryService.ScheduleOverdue(jobs, be, configs.GetEnv("OVERDUE_CRON")); err != nil {
		log.Fatalf("❌ overdue job: %v", err)
	}
	if err := scheduler.ScheduleAuthCleanup(jobs, blacklist, be, configs.GetEnv("AUTH_CLEANUP_CRON")); err != nil {
		log.Fatalf("❌ auth cleanup job: %v", err)
	}
	jobs.Start()

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("✅ Listening on :%s (backend=%s)", port, be.Name())
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	<-jobs.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.CloseRedis()
	closeBackend()
}
