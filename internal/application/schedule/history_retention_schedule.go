package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-search/internal/domain/usecase/history"
	"weather-search/pkg/log"
	"weather-search/pkg/msg"
	"weather-search/pkg/redis"
)

const retentionLockKey = "history_retention_scheduler"

// RetentionSchedulerConfig holds configuration for the history retention scheduler
type RetentionSchedulerConfig struct {
	CronExpression string
	RetentionDays  int
	LockTTL        time.Duration
}

// RetentionScheduler purges old searches. Each run holds a distributed lock so only one instance purges.
type RetentionScheduler struct {
	cron        *cron.Cron
	useCase     history.UseCase
	redisClient *redis.Client
	config      RetentionSchedulerConfig
	now         func() time.Time
}

// NewRetentionScheduler creates the scheduler. A nil redisClient runs every purge without locking.
func NewRetentionScheduler(useCase history.UseCase, redisClient *redis.Client, config RetentionSchedulerConfig) *RetentionScheduler {
	return &RetentionScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
		now:         time.Now,
	}
}

// InitRetentionScheduleTasks registers the purge job and starts the cron
func (s *RetentionScheduler) InitRetentionScheduleTasks(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.config.CronExpression, func() {
		s.ExecuteScheduledTask(ctx)
	})
	if err != nil {
		log.Error(msg.GetMessage("schedule.register-fail", retentionLockKey, err))
		return err
	}

	s.cron.Start()
	log.Infof("History retention scheduler started with cron expression: %s", s.config.CronExpression)
	return nil
}

// ExecuteScheduledTask purges searches older than the retention window
func (s *RetentionScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.New().String()

	if s.redisClient == nil {
		s.purge(ctx, requestID)
		return
	}

	lockOptions := redis.NewLockOptions()
	lockOptions.TTL = s.getLockTTL()
	lockOptions.RefreshInterval = s.getLockTTL() / 3

	lock := redis.NewLock(s.redisClient, retentionLockKey, lockOptions)
	if err := lock.Lock(ctx); err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			log.Info(msg.GetMessage("schedule.lock-busy", retentionLockKey), zap.String("request_id", requestID))
			return
		}
		log.Error(msg.GetMessage("schedule.retention-fail", err), zap.String("request_id", requestID))
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	refreshErrChan := lock.AutoRefresh(runCtx)
	defer func() {
		cancel()
		<-refreshErrChan
		if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redis.ErrLockNotAcquired) {
			log.Warn("failed to release retention lock", zap.String("request_id", requestID), zap.Error(err))
		}
	}()

	s.purge(runCtx, requestID)
}

func (s *RetentionScheduler) purge(ctx context.Context, requestID string) {
	cutoff := s.now().UTC().AddDate(0, 0, -s.getRetentionDays())
	log.Info(msg.GetMessage("schedule.retention-start", cutoff.Format(time.RFC3339)), zap.String("request_id", requestID))

	deleted, err := s.useCase.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Error(msg.GetMessage("schedule.retention-fail", err), zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("schedule.retention-end", deleted, cutoff.Format(time.RFC3339)), zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler
func (s *RetentionScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *RetentionScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 5 * time.Minute
}

func (s *RetentionScheduler) getRetentionDays() int {
	if s.config.RetentionDays > 0 {
		return s.config.RetentionDays
	}
	return 90
}
