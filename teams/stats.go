package teams

import (
	"context"

	"iotreg/models"
)

// DashboardStats are point-in-time counts, queried independently and never
// cached.
type DashboardStats struct {
	TotalTeams    int64 `json:"total_teams"`
	PendingTeams  int64 `json:"pending_teams"`
	ApprovedTeams int64 `json:"approved_teams"`
	RejectedTeams int64 `json:"rejected_teams"`
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalTeams, err = s.store.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingTeams, err = s.store.CountByStatus(ctx, models.StatusPending); err != nil {
		return nil, err
	}
	if stats.ApprovedTeams, err = s.store.CountByStatus(ctx, models.StatusApproved); err != nil {
		return nil, err
	}
	if stats.RejectedTeams, err = s.store.CountByStatus(ctx, models.StatusRejected); err != nil {
		return nil, err
	}

	return stats, nil
}

// Recent returns the limit most recently created teams, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Team, error) {
	return s.store.Recent(ctx, limit)
}
