package service

import (
	"context"

	"github.com/yndnr/examprep-go/internal/cli/connection"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// StatisticsService reads the user's performance summary.
type StatisticsService struct {
	api Requester
}

// NewStatisticsService creates a StatisticsService.
func NewStatisticsService(api Requester) *StatisticsService {
	return &StatisticsService{api: api}
}

// Get fetches GET /statistics.
func (s *StatisticsService) Get(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := s.api.Request(ctx, "/statistics", connection.RequestOptions{}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
