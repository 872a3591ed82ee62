package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type MaterialReader interface {
	Material(ctx context.Context, t model.EntityType, id string) (*model.Material, error)
	List(ctx context.Context, t model.EntityType) ([]*model.Material, error)
}

type service struct {
	repo          MaterialReader
	readDBTimeout time.Duration
}

func NewMaterialService(repo MaterialReader, readDBTimeout time.Duration) *service {
	return &service{repo: repo, readDBTimeout: readDBTimeout}
}

func (s *service) Material(ctx context.Context, t model.EntityType, id string) (*model.Material, error) {
	const op = "material.service.Material"
	log := logger.With(
		logger.String("entity_type", t.String()),
		logger.String("entity_id", id),
	)

	if !t.Valid() {
		log.Error(ctx, "validation: unknown entity type")
		return nil, errors.Join(model.ErrValidation, fmt.Errorf("unknown entity type %q", t))
	}
	id = strings.TrimSpace(id)
	if id == "" {
		log.Error(ctx, "validation: empty material id")
		return nil, errors.Join(model.ErrValidation, errors.New("material id must be non-empty"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	m, err := s.repo.Material(ctx, t, id)
	if err != nil {
		log.Error(ctx, "repository material", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func (s *service) ListMaterials(ctx context.Context, t model.EntityType) ([]*model.Material, error) {
	const op = "material.service.ListMaterials"

	if !t.Valid() {
		logger.Error(ctx, "validation: unknown entity type", logger.String("entity_type", t.String()))
		return nil, errors.Join(model.ErrValidation, fmt.Errorf("unknown entity type %q", t))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	out, err := s.repo.List(ctx, t)
	if err != nil {
		logger.Error(ctx, "repository list materials", logger.String("entity_type", t.String()), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
