package services

import (
	"context"
	"errors"
	"fmt"

	"taskboard/backend/models"
	"taskboard/backend/repositories"
)

type TagService struct {
	Tags repositories.TagRepository
}

func NewTagService(tags repositories.TagRepository) *TagService {
	return &TagService{Tags: tags}
}

// Create registers a tag. Names are globally unique; a duplicate fails
// with Conflict and never produces a second tag.
func (s *TagService) Create(ctx context.Context, name, color string) (*models.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", ErrValidation)
	}

	tag := &models.Tag{Name: name, Color: color}
	if err := s.Tags.Insert(ctx, tag); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: tag already exists", ErrConflict)
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.Tags.List(ctx)
}
