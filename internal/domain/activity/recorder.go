package activity

import (
	"context"

	"github.com/google/uuid"

	"rental-app-go/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

// Recorder is the fire-and-forget audit sink. A failed write is logged and
// swallowed; audit problems never fail the request that triggered them.
type Recorder struct {
	repo Repository
	log  logger.Logger
}

func NewRecorder(repo Repository, log logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

func (r *Recorder) Record(ctx context.Context, actorID, action, targetType, targetID, description string) {
	entry := Entry{
		ID:          uuid.NewString(),
		UserID:      actorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
	}
	if err := r.repo.Create(ctx, &entry); err != nil {
		r.log.InternalError("activity: record failed", err, "action", action, "target_type", targetType, "target_id", targetID)
	}
}

func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return r.repo.ListRecent(ctx, limit)
}
