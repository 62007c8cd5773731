package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/hirehub/hirehub/board/application/applicationapi"
	"github.com/hirehub/hirehub/board/application/applicationinfra"
	"github.com/hirehub/hirehub/board/application/applicationsrv"
	"github.com/hirehub/hirehub/board/company/companyapi"
	"github.com/hirehub/hirehub/board/company/companyinfra"
	"github.com/hirehub/hirehub/board/company/companysrv"
	"github.com/hirehub/hirehub/board/job/jobapi"
	"github.com/hirehub/hirehub/board/job/jobinfra"
	"github.com/hirehub/hirehub/board/job/jobsrv"
	"github.com/hirehub/hirehub/board/job/jobsweep"
	"github.com/hirehub/hirehub/pkg/fsx"
	"github.com/hirehub/hirehub/pkg/fsx/fsxs3"
	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/iam/auth/authinfra"
	"github.com/hirehub/hirehub/pkg/iam/user/userapi"
	"github.com/hirehub/hirehub/pkg/iam/user/userinfra"
	"github.com/hirehub/hirehub/pkg/iam/user/usersrv"
	"github.com/hirehub/hirehub/pkg/logx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig    auth.Config
	SweepInterval time.Duration

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Core Services
	TokenService       auth.TokenService
	RevocationList     auth.RevocationList
	UserService        *usersrv.UserService
	CompanyService     *companysrv.CompanyService
	JobService         *jobsrv.JobService
	ApplicationService *applicationsrv.ApplicationService

	// Background
	Sweeper *jobsweep.Sweeper

	// API Handlers
	UserHandlers        *userapi.Handlers
	CompanyHandlers     *companyapi.Handlers
	JobHandlers         *jobapi.Handlers
	ApplicationHandlers *applicationapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWT.SecretKey = os.Getenv("JWT_SECRET")
	if c.AuthConfig.JWT.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWT.SecretKey = "super-secret-key-please-change-me-in-production"
	}
	c.AuthConfig.JWT.SecureCookies = os.Getenv("SECURE_COOKIES") == "true"

	// 5. Sweep Interval
	c.SweepInterval = time.Hour
	if raw := os.Getenv("SWEEP_INTERVAL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			c.SweepInterval = time.Duration(minutes) * time.Minute
		} else {
			logx.Warnf("Invalid SWEEP_INTERVAL_MINUTES %q, using default", raw)
		}
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)

	// --- Infrastructure Services ---
	passwordSvc := userinfra.NewBcryptPasswordService()
	c.RevocationList = authinfra.NewRedisRevocationList(c.Redis)
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWT.SecretKey,
		c.AuthConfig.JWT.AccessTokenTTL,
		c.AuthConfig.JWT.Issuer,
	)

	// --- Domain Services ---
	c.UserService = usersrv.NewUserService(userRepo, passwordSvc, c.TokenService, c.FileSystem)
	c.CompanyService = companysrv.NewCompanyService(companyRepo, c.FileSystem)
	c.JobService = jobsrv.NewJobService(jobRepo, companyRepo, applicationRepo)
	c.ApplicationService = applicationsrv.NewApplicationService(applicationRepo, jobRepo, userRepo, c.FileSystem)

	// --- Background ---
	c.Sweeper = jobsweep.NewSweeper(c.JobService, c.Redis, c.SweepInterval)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(
		c.UserService,
		c.RevocationList,
		c.AuthConfig.JWT.CookieName,
		c.AuthConfig.JWT.SecureCookies,
	)
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(
		c.TokenService,
		c.RevocationList,
		c.AuthConfig.JWT.CookieName,
	)
}
