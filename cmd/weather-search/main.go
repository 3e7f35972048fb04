package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"weather-search/configs"
	"weather-search/docs"
	"weather-search/internal/application/controller"
	"weather-search/internal/application/middleware"
	"weather-search/internal/application/processor"
	"weather-search/internal/application/schedule"
	"weather-search/internal/domain/gateway/api"
	"weather-search/internal/domain/gateway/cache"
	"weather-search/internal/domain/gateway/db"
	"weather-search/internal/domain/gateway/queue"
	"weather-search/internal/domain/usecase/autocomplete"
	"weather-search/internal/domain/usecase/health"
	"weather-search/internal/domain/usecase/history"
	"weather-search/internal/domain/usecase/weather"
	"weather-search/internal/infra/aws"
	"weather-search/internal/infra/database/gorm"
	"weather-search/internal/infra/database/migration"
	"weather-search/internal/infra/database/sqlc"
	"weather-search/pkg/http"
	"weather-search/pkg/log"
	"weather-search/pkg/metrics"
	"weather-search/pkg/msg"
	"weather-search/pkg/redis"
	"weather-search/pkg/resource"
	"weather-search/pkg/sqs"
)

// @title Weather Search API
// @version 1.0.0
// @description City weather lookup backed by Open-Meteo, with autocomplete and session search history.
// @BasePath /weather-search
func main() {
	defer log.Sync()

	if err := configs.LoadEnv(); err != nil {
		log.Fatalw(msg.GetMessage("app.init-fail", "env", err), "error", err)
	}
	if err := resource.Init(configs.Env.PropertiesPath); err != nil {
		log.Fatalw(err.Error())
	}
	if err := msg.Init(configs.Env.MessagesPath); err != nil {
		log.Fatalw(err.Error())
	}

	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	sqlDB, err := sqlc.Open(ctx)
	if err != nil {
		log.Fatalw(msg.GetMessage("app.init-fail", "database", err), "error", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if resource.GetBool("app.db.migrate") {
		if err := migration.Up(sqlDB); err != nil {
			log.Fatalw(msg.GetMessage("app.init-fail", "migrations", err), "error", err)
		}
	}

	gormDB, err := gorm.Open(sqlDB)
	if err != nil {
		log.Fatalw(msg.GetMessage("app.init-fail", "gorm", err), "error", err)
	}

	redisClient := newRedisClient(ctx)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	lookupConfig := configs.LookupConfig()

	// Init Gateways
	cityGateway := db.NewSQLCCityGateway(sqlDB)
	searchRecordGateway := db.NewGormSearchRecordGateway(gormDB)
	dbHealthGateway := db.NewSQLCHealthDBGateway(sqlDB)

	geocodingGateway := api.NewGeocodingGateway(resource.GetString("app.geocoding.url"), newClientOptions("geocoding"))
	weatherGateway := api.NewWeatherGateway(resource.GetString("app.forecast.url"), newClientOptions("forecast"))

	var redisHealthChecker *redis.HealthChecker
	if redisClient != nil {
		forecastCache := redis.NewCache(redisClient, redis.NewCacheOptions().WithCacheName(api.ForecastCacheName))
		weatherGateway = api.NewCachedWeatherGateway(weatherGateway, forecastCache)
		redisHealthChecker = redis.NewHealthChecker(redisClient, 2*time.Second)
	}
	cacheHealthGateway := cache.NewRedisHealthGateway(redisHealthChecker)
	queueHealthGateway := queue.NewQueueHealthGateway()

	// Init UseCase
	queueName := resource.GetString("app.history.queue-name")
	sqsClient, queueSender := newQueue(ctx)
	historyUseCase := history.NewHistoryUseCase(queueName, queueSender, cityGateway, searchRecordGateway)
	weatherUseCase := weather.NewWeatherUseCase(lookupConfig, cityGateway, geocodingGateway, weatherGateway, historyUseCase)
	autocompleteUseCase := autocomplete.NewAutocompleteUseCase(lookupConfig, cityGateway, geocodingGateway,
		resource.GetDurationOrDefault("app.autocomplete.cache-ttl", time.Minute))
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, cacheHealthGateway, queueHealthGateway)

	// Init Worker
	if sqsClient != nil {
		worker, err := sqs.NewWorker(ctx, sqsClient, queueName, processor.NewHistoryProcessor(historyUseCase), &sqs.WorkerConfig{
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			PoolSize:            resource.GetIntOrDefault("app.history.worker-pool-size", 5),
			LogLevel:            sqs.ErrorLevel,
		})
		if err != nil {
			log.Fatalw(msg.GetMessage("app.init-fail", "history worker", err), "error", err)
		}
		queueHealthGateway.RegisterWorker(queueName, worker)
		go worker.Start(ctx)
	}

	// Init Schedule
	retentionScheduler := schedule.NewRetentionScheduler(historyUseCase, redisClient, schedule.RetentionSchedulerConfig{
		CronExpression: resource.GetStringOrDefault("app.history.retention.cron", "0 3 * * *"),
		RetentionDays:  resource.GetInt("app.history.retention.days"),
		LockTTL:        resource.GetDuration("app.history.retention.lock-ttl"),
	})
	if err := retentionScheduler.InitRetentionScheduleTasks(ctx); err != nil {
		log.Fatalw(msg.GetMessage("app.init-fail", "retention schedule", err), "error", err)
	}
	defer retentionScheduler.Stop()

	// Init Routes
	contextPath := resource.GetStringOrDefault("app.server.context-path", configs.Env.ContextPath)
	docs.SwaggerInfo.BasePath = contextPath

	e := echo.New()
	e.HideBanner = true
	e.Validator = controller.NewRequestValidator()
	e.Use(echomw.Recover())
	middleware.SetupRequestLogger(e)
	e.Use(middleware.Session())

	apiGroup := e.Group(contextPath)
	apiGroup.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	apiGroup.GET("/swagger/*", echoSwagger.WrapHandler)

	controller.NewCatalogController(apiGroup, contextPath).InitCatalogRoutes()
	controller.NewHealthController(apiGroup, healthUseCase).InitHealthRoutes()
	controller.NewWeatherController(apiGroup, weatherUseCase, autocompleteUseCase, lookupConfig.MinQueryLength).InitWeatherRoutes()
	controller.NewHistoryController(apiGroup, historyUseCase).InitHistoryRoutes()

	// Start Routes
	port := resource.GetStringOrDefault("app.server.port", "8080")
	server := &nethttp.Server{
		Addr:         ":" + port,
		ReadTimeout:  resource.GetDurationOrDefault("app.server.read-timeout", 15*time.Second),
		WriteTimeout: resource.GetDurationOrDefault("app.server.write-timeout", 30*time.Second),
	}
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.StartServer(server); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalw(err.Error())
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), resource.GetDurationOrDefault("app.server.shutdown-timeout", 10*time.Second))
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stopped"))
}

func newClientOptions(name string) http.ClientOptions {
	return http.ClientOptions{
		ConnectionTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		Backoff: &http.BackoffConfig{
			MaxRetries:      resource.GetInt("app.resilience.max-retries"),
			InitialInterval: resource.GetDurationOrDefault("app.resilience.initial-interval", 200*time.Millisecond),
			MaxInterval:     resource.GetDurationOrDefault("app.resilience.max-interval", 2*time.Second),
		},
		RateLimit: resource.GetFloat64("app.resilience.rate-limit"),
		RateBurst: resource.GetInt("app.resilience.rate-burst"),
		CircuitBreaker: &http.CircuitBreakerConfig{
			ConsecutiveFailures: uint32(resource.GetIntOrDefault("app.resilience.breaker-failures", 5)),
			OpenTimeout:         resource.GetDurationOrDefault("app.resilience.breaker-open-timeout", 30*time.Second),
		},
		Logger: &http.ZapLogger{Name: name},
	}
}

// newRedisClient returns nil when redis is disabled or unreachable, running without forecast cache and scheduler lock
func newRedisClient(ctx context.Context) *redis.Client {
	if !resource.GetBool("app.redis.enabled") {
		return nil
	}

	config := redis.NewRedisConfig()
	config.Host = resource.GetStringOrDefault("app.redis.host", config.Host)
	config.Port = resource.GetIntOrDefault("app.redis.port", config.Port)
	config.Password = resource.GetString("app.redis.password")
	config.Database = resource.GetInt("app.redis.database")
	config.WithCacheTTL(api.ForecastCacheName, resource.GetDurationOrDefault("app.forecast.cache-ttl", 10*time.Minute))

	client, err := redis.NewClient(config)
	if err != nil {
		log.Fatalw(msg.GetMessage("app.init-fail", "redis", err), "error", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.Warnw(msg.GetMessage("app.init-fail", "redis", err), "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// newQueue returns nil values when history is recorded inline
func newQueue(ctx context.Context) (sqs.Client, queue.Sender) {
	if !resource.GetBool("app.history.async") {
		return nil, nil
	}

	awsConfig, err := aws.LoadConfig(ctx)
	if err != nil {
		log.Fatalw(msg.GetMessage("app.init-fail", "aws", err), "error", err)
	}
	client := aws.NewSqsClient(awsConfig)
	return client, aws.NewSQSSenderAdapter(client)
}
