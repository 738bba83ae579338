package service

import (
	"context"
	"time"

	"recipeshare/internal/models"
	"recipeshare/internal/repository"
)

type ActivityService struct {
	activity repository.Activity
}

func NewActivityService(activity repository.Activity) *ActivityService {
	return &ActivityService{activity: activity}
}

// Events returns audit events matching the filter, oldest first.
func (s *ActivityService) Events(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	return s.activity.List(ctx, f.From, f.To, f.Type)
}

// EventsSince returns events recorded strictly after the given time.
func (s *ActivityService) EventsSince(ctx context.Context, after time.Time) ([]models.ActivityEvent, error) {
	return s.activity.Since(ctx, after)
}
