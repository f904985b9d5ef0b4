package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/service"
)

const cleanupBatchSize = 200

// SessionCleanupJob removes sessions idle longer than the ttl, including
// their documents, pages, messages and stored files.
type SessionCleanupJob struct {
	sessions *service.SessionService
	ttl      time.Duration
}

func NewSessionCleanupJob(sessions *service.SessionService, ttl time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions, ttl: ttl}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if j.sessions == nil {
		return nil
	}
	ttl := j.ttl
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	removed, err := j.sessions.CleanupIdle(ctx, ttl, cleanupBatchSize)
	if err != nil {
		return err
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Info("idle sessions removed", zap.Int("count", removed))
	}
	return nil
}
