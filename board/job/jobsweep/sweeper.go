package jobsweep

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hirehub/hirehub/board/job/jobsrv"
	"github.com/hirehub/hirehub/pkg/logx"
)

const (
	// lockKey guards the sweep so only one instance runs it per interval
	lockKey = "jobs:sweep:lock"
)

// Sweeper periodically deactivates job postings whose expiration has
// passed. The sweep itself is idempotent; the Redis lock only avoids
// redundant work when several instances run side by side.
type Sweeper struct {
	jobService *jobsrv.JobService
	redis      *redis.Client
	interval   time.Duration
	stop       chan struct{}
	done       chan struct{}
}

// NewSweeper creates a sweeper with the given run interval
func NewSweeper(jobService *jobsrv.JobService, redisClient *redis.Client, interval time.Duration) *Sweeper {
	return &Sweeper{
		jobService: jobService,
		redis:      redisClient,
		interval:   interval,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine. An initial sweep
// runs immediately so restarts do not leave stale postings active for
// a full interval.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop signals the loop to exit and waits for the in-flight sweep
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	logx.Infof("expiration sweeper started, interval %s", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stop:
			logx.Info("expiration sweeper stopped")
			return
		case <-ctx.Done():
			logx.Info("expiration sweeper context cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	acquired, err := s.acquireLock(ctx)
	if err != nil {
		logx.Warnf("sweep lock unavailable, running unguarded: %v", err)
	} else if !acquired {
		logx.Debug("sweep lock held elsewhere, skipping")
		return
	}

	if _, err := s.jobService.SweepExpired(ctx, time.Now()); err != nil {
		logx.Errorf("expiration sweep failed: %v", err)
	}
}

// acquireLock takes the advisory sweep lock for one interval. The lock
// expires on its own; the holder never releases it early so a crashed
// holder cannot wedge the sweep.
func (s *Sweeper) acquireLock(ctx context.Context) (bool, error) {
	return s.redis.SetNX(ctx, lockKey, time.Now().Unix(), s.interval).Result()
}
