package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/config"
	infraCache "ayurveda-backend/internal/infrastructure/cache"
	"ayurveda-backend/internal/infrastructure/database"
	"ayurveda-backend/pkg/cache"
	"ayurveda-backend/pkg/jwt"
	"ayurveda-backend/pkg/logger"

	doctorHandler "ayurveda-backend/internal/domains/doctor/handler"
	doctorRepo "ayurveda-backend/internal/domains/doctor/repository"
	doctorService "ayurveda-backend/internal/domains/doctor/service"

	reviewHandler "ayurveda-backend/internal/domains/review/handler"
	reviewRepo "ayurveda-backend/internal/domains/review/repository"
	reviewService "ayurveda-backend/internal/domains/review/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache // nil khi Redis không sẵn sàng
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	DoctorRepo doctorRepo.DoctorRepository
	ReviewRepo reviewRepo.ReviewRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	// Aggregator là đường tính statistics duy nhất, dùng chung cho review và doctor
	ReviewAggregator *reviewService.Aggregator
	ReviewService    reviewService.ServiceInterface
	DoctorService    doctorService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	DoctorHandler *doctorHandler.DoctorHandler
	ReviewHandler *reviewHandler.ReviewHandler

	redis *infraCache.RedisCache
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Config + logger
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	log.Info().Str("env", cfg.App.Environment).Msg("🔧 Initializing DI Container...")

	// Step 2: PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Step 3: Redis (non-critical)
	c.initCache(ctx)

	// Step 4: JWT
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Step 5: Layers
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// initCache: Redis lỗi thì chạy không cache, statistics tính trực tiếp từ DB
func (c *Container) initCache(ctx context.Context) {
	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), statistics cache disabled")
		_ = rc.Close()
		return
	}
	c.redis = rc
	c.Cache = rc
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.DoctorRepo = doctorRepo.NewPostgresDoctorRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.ReviewAggregator = reviewService.NewAggregator(c.ReviewRepo, c.Cache, c.Config.Review.StatsCacheTTL)

	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.DoctorRepo, // DoctorLookup
		c.ReviewAggregator,
		reviewService.Config{AutoApprove: c.Config.Review.AutoApprove},
	)

	c.DoctorService = doctorService.NewDoctorService(c.DoctorRepo, c.ReviewAggregator)
}

func (c *Container) initHandlers() {
	c.DoctorHandler = doctorHandler.NewDoctorHandler(c.DoctorService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// ========================================
// CLEANUP
// ========================================

func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
