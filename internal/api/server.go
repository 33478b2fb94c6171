package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/config"
	"github.com/ehealth-ke/facility-registry/infra/queue"
	"github.com/ehealth-ke/facility-registry/internal/api/rest/handlers"
	"github.com/ehealth-ke/facility-registry/internal/api/rest/middleware"
	"github.com/ehealth-ke/facility-registry/internal/domain"
	"github.com/ehealth-ke/facility-registry/internal/helper"
	"github.com/ehealth-ke/facility-registry/internal/repository"
	"github.com/ehealth-ke/facility-registry/internal/services"
)

func StartServer(cfg config.Config, log zerolog.Logger) {
	app := fiber.New()

	app.Use(middleware.RequestLogger(log))

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection error")
	}
	log.Info().Msg("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20240117

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatal().Err(err).Msg("migration lock error")
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(domain.RegistryModels()...); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}
	log.Info().Msg("migration successful")

	if _, err := domain.SystemUserID(db); err != nil {
		log.Fatal().Err(err).Msg("system user seed error")
	}

	// ---------- Infra ----------
	var kafkaProducer *queue.Producer
	if cfg.KafkaBroker != "" {
		kafkaProducer = queue.NewProducer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			log,
		)
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	floors := repository.CodeFloors{
		domain.SequenceFacility: cfg.FacilityCodeFloor,
	}

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	regionRepo := repository.NewRegionRepository(db, floors)
	catalogRepo := repository.NewCatalogRepository(db, floors)
	facilityRepo := repository.NewFacilityRepository(db, floors)
	updateRepo := repository.NewFacilityUpdateRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, regionRepo, catalogRepo, authHelper, log)
	regionSvc := services.NewRegionService(regionRepo, userRepo, log)
	catalogSvc := services.NewCatalogService(catalogRepo, log)
	facilitySvc := services.NewFacilityService(
		facilityRepo,
		updateRepo,
		userRepo,
		regionRepo,
		catalogRepo,
		kafkaProducer,
		log,
	)
	dashboardSvc := services.NewDashboardService(dashboardRepo, userRepo, log)

	// ---------- Handlers ----------
	userHandler := handlers.NewUserHandler(userSvc)
	regionHandler := handlers.NewRegionHandler(regionSvc)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	facilityHandler := handlers.NewFacilityHandler(facilitySvc)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// public routes first, then the token gate
	userHandler.SetupAuthRoutes(app)
	app.Use(middleware.AuthMiddleware(authHelper))

	staff := middleware.StaffOnly(userSvc)
	userHandler.SetupRoutes(app, staff)
	regionHandler.SetupRoutes(app, staff)
	catalogHandler.SetupRoutes(app, staff)
	facilityHandler.SetupRoutes(app, staff)
	dashboardHandler.SetupRoutes(app)

	// ---------- Event tail ----------
	if cfg.KafkaBroker != "" && cfg.KafkaGroupID != "" {
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			services.NewEventLogService(log),
			log,
		)
		go consumer.Listen(context.Background())
	}

	// ---------- Listen ----------
	log.Info().Str("addr", cfg.ServerPort).Msg("listening")
	if err := app.Listen(cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
