package quiz

import (
	"context"
	"errors"
)

type Service struct {
	open Opener
}

func NewService(open Opener) *Service {
	return &Service{open: open}
}

// ListSections returns every stored section keyed by its raw name.
func (s *Service) ListSections(ctx context.Context) (map[string]SectionInfo, error) {
	reader, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	counts, err := reader.SectionCounts(ctx)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]SectionInfo, len(counts))
	for _, row := range counts {
		sections[row.Section] = SectionInfo{
			DisplayName: DisplayName(row.Section),
			Count:       row.Count,
		}
	}
	return sections, nil
}

// ListQuestions returns the questions of one section in load order. The match
// is exact and case-sensitive, so any unknown or whitespace key yields an
// empty slice.
func (s *Service) ListQuestions(ctx context.Context, section string) ([]Question, error) {
	if section == "" {
		return nil, ErrSectionRequired
	}

	reader, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	questions, err := reader.QuestionsBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []Question{}
	}
	return questions, nil
}

func (s *Service) acquire(ctx context.Context) (Reader, error) {
	if s == nil || s.open == nil {
		return nil, errors.New("question store is not configured")
	}
	return s.open(ctx)
}
