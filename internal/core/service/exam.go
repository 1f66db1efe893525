package service

import (
	"context"
	"net/url"

	"github.com/yndnr/examprep-go/internal/cli/connection"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// Requester performs API calls. *connection.Client satisfies it.
type Requester interface {
	Request(ctx context.Context, endpoint string, opts connection.RequestOptions, out any) error
}

// ExamService reads the exam catalogue.
type ExamService struct {
	api Requester
}

// NewExamService creates an ExamService.
func NewExamService(api Requester) *ExamService {
	return &ExamService{api: api}
}

// List fetches all exams and applies filter locally.
func (s *ExamService) List(ctx context.Context, filter domain.ExamFilter) ([]domain.Exam, error) {
	var exams []domain.Exam
	if err := s.api.Request(ctx, "/exams", connection.RequestOptions{}, &exams); err != nil {
		return nil, err
	}
	return filter.Apply(exams), nil
}

// Get fetches one exam.
func (s *ExamService) Get(ctx context.Context, id string) (*domain.Exam, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("exam id is required")
	}
	var exam domain.Exam
	if err := s.api.Request(ctx, "/exams/"+url.PathEscape(id), connection.RequestOptions{}, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}
