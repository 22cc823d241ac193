package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
	database "schooldesk_backend/internals/databases"
	feeModel "schooldesk_backend/internals/features/finance/fees/model"
	feeRepo "schooldesk_backend/internals/features/finance/fees/repository"
	feeScheduler "schooldesk_backend/internals/features/finance/fees/scheduler"
	feeService "schooldesk_backend/internals/features/finance/fees/service"
	admissionModel "schooldesk_backend/internals/features/school/admissions/model"
	assignmentModel "schooldesk_backend/internals/features/school/assignments/model"
	attendanceModel "schooldesk_backend/internals/features/school/attendance/model"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
	classRepo "schooldesk_backend/internals/features/school/classes/main/repository"
	classworkModel "schooldesk_backend/internals/features/school/classwork/model"
	feedbackModel "schooldesk_backend/internals/features/school/feedback/model"
	idCardModel "schooldesk_backend/internals/features/school/id_cards/model"
	interactiveModel "schooldesk_backend/internals/features/school/interactive_assignments/model"
	parentFeedbackModel "schooldesk_backend/internals/features/school/parent_feedback/model"
	slipModel "schooldesk_backend/internals/features/school/slips/model"
	sportsModel "schooldesk_backend/internals/features/school/sports_enrollments/model"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	authModel "schooldesk_backend/internals/features/users/auth/model"
	authScheduler "schooldesk_backend/internals/features/users/auth/scheduler"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	"schooldesk_backend/internals/helpers/cache"
	helperOSS "schooldesk_backend/internals/helpers/oss"
	"schooldesk_backend/internals/middlewares"
	routes "schooldesk_backend/internals/route"
	"schooldesk_backend/internals/seeds"
)

func allModels() []any {
	return []any{
		&authModel.ProfileModel{}, &authModel.TokenBlacklist{},
		&classModel.ClassModel{}, &studentModel.StudentModel{},
		&assignmentModel.AssignmentModel{}, &assignmentModel.AssignmentFileModel{},
		&interactiveModel.InteractiveAssignmentModel{}, &interactiveModel.InteractiveQuestionModel{},
		&interactiveModel.InteractiveSubmissionModel{}, &interactiveModel.InteractiveResponseModel{},
		&attendanceModel.AttendanceModel{}, &feeModel.FeeModel{},
		&feedbackModel.FeedbackModel{}, &feedbackModel.FeedbackReplyModel{},
		&slipModel.SlipFieldModel{}, &slipModel.SlipTemplateModel{},
		&slipModel.SlipTemplateFieldModel{}, &slipModel.SlipDataModel{},
		&idCardModel.IDCardModel{}, &sportsModel.SportsEnrollmentModel{},
		&admissionModel.ProspectiveStudentModel{}, &admissionModel.AdmissionProcessModel{},
		&admissionModel.AdmissionNoteModel{}, &admissionModel.AdmissionCommunicationModel{},
		&classworkModel.ClassworkModel{}, &classworkModel.ClassworkFileModel{},
		&parentFeedbackModel.ParentFeedbackModel{}, &parentFeedbackModel.FeedbackCertificateModel{},
		&parentFeedbackModel.ParentSubmittedFeedbackModel{},
	}
}

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               configs.GetEnvInt("BODY_LIMIT_MB", 10) * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	limiterRegistry := middlewares.NewRateLimitRegistry()
	middlewares.SetupMiddlewares(app, limiterRegistry)

	// redis opsional, cache jatuh ke memori
	configs.ConnectRedis()
	store := cache.New(configs.RDB)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(allModels()...); err != nil {
			log.Fatal().Err(err).Msg("auto migrate failed")
		}
		log.Info().Msg("auto migrate done")
	}
	if configs.GetEnvBool("DB_SEED", false) {
		seeds.RunAllSeeds(context.Background(), database.DB, configs.GetEnv("SEED_DIR", "internals/seeds/data"))
	}

	var blob helperOSS.BlobService
	if b, err := helperOSS.NewOSSBlobServiceFromEnv(configs.GetEnv("OSS_PREFIX", "schooldesk")); err != nil {
		log.Warn().Err(err).Msg("OSS not configured, uploads disabled")
	} else {
		blob = b
	}

	var gateway feeService.PaymentGateway
	snapGateway, serverKey := feeService.NewSnapGatewayFromEnv()
	if snapGateway != nil {
		gateway = snapGateway
	} else {
		log.Warn().Msg("MIDTRANS_SERVER_KEY not set, online payment disabled")
	}

	// ⏱ scheduler setelah DB siap
	sched := cron.New(cron.WithLocation(time.UTC))
	if err := authScheduler.StartBlacklistCleanupScheduler(sched, helperAuth.NewGormBlacklist(database.DB, configs.JWTSecret)); err != nil {
		log.Error().Err(err).Msg("blacklist cleanup scheduler")
	}
	fees := feeService.NewFeeService(
		feeRepo.NewGormFeeRepository(database.DB),
		studentRepo.NewGormStudentRepository(database.DB),
		classRepo.NewGormClassRepository(database.DB),
	)
	if err := feeScheduler.StartOverdueFeeScheduler(sched, fees); err != nil {
		log.Error().Err(err).Msg("overdue fee scheduler")
	}
	if _, err := sched.AddFunc("@every 5m", func() {
		if n := limiterRegistry.Sweep(); n > 0 {
			log.Debug().Int("removed", n).Msg("rate limiter sweep")
		}
	}); err != nil {
		log.Error().Err(err).Msg("rate limiter sweep scheduler")
	}
	sched.Start()

	routes.SetupRoutes(app, routes.Deps{
		DB:        database.DB,
		Cache:     store,
		Blob:      blob,
		Gateway:   gateway,
		ServerKey: serverKey,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Info().Str("port", port).Msg("listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown: stop cron, tutup server, redis, pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	cronCtx := sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}

	if configs.RDB != nil {
		_ = configs.RDB.Close()
	}
	database.Close()
}
