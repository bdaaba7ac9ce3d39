// Package service contains the example business logic.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/example-api/biz/example/data/repository"
	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/logging/logger"
	"github.com/ncobase/example-api/logging/observes"
	"github.com/ncobase/example-api/paging"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNotFound matches every NotFoundError
var ErrNotFound = errors.New("example not found")

// NotFoundError reports a write against an id that does not exist
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Example with ID %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type Service struct {
	repo   repository.ExampleRepository
	logger *logger.Logger
}

func New(repo repository.ExampleRepository, l *logger.Logger) *Service {
	if l == nil {
		l = logger.StdLogger()
	}
	return &Service{repo: repo, logger: l}
}

// Ping reports whether the backing store is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Create stores a new example; status defaults to active
func (s *Service) Create(ctx context.Context, req *structs.CreateExampleRequest) (_ *structs.Example, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "example.Create")
	defer func() { observes.EndSpan(span, err) }()

	body := *req
	if body.Status == nil || *body.Status == "" {
		status := structs.StatusActive
		body.Status = &status
	}

	example, err := s.repo.Create(ctx, &body)
	if err != nil {
		s.logger.Error(ctx, "Failed to create example", "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "Example created", "id", example.ID)
	return example, nil
}

// Get returns the example with id; found is false when there is none
func (s *Service) Get(ctx context.Context, id string) (_ *structs.Example, found bool, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "example.Get", attribute.String("example.id", id))
	defer func() { observes.EndSpan(span, err) }()

	example, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to get example", "error", err, "id", id)
		return nil, false, err
	}
	return example, found, nil
}

// List normalizes req, filters the store and returns the requested page
func (s *Service) List(ctx context.Context, req *structs.QueryRequest) (_ *structs.ListResult, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "example.List")
	defer func() { observes.EndSpan(span, err) }()

	q, err := NormalizeQuery(req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("page", q.Page), attribute.Int("size", q.Size))

	result, err := paging.Paginate(q.Params, func(offset, limit int) ([]*structs.Example, int, error) {
		return s.repo.List(ctx, &q.Filter, offset, limit)
	})
	if err != nil {
		s.logger.Error(ctx, "Failed to list examples", "error", err)
		return nil, err
	}
	return result, nil
}

// Update merges req into the example with id. A missing example, including
// one removed between the existence check and the write, is a NotFoundError.
func (s *Service) Update(ctx context.Context, id string, req *structs.UpdateExampleRequest) (_ *structs.Example, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "example.Update", attribute.String("example.id", id))
	defer func() { observes.EndSpan(span, err) }()

	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	example, found, err := s.repo.Update(ctx, id, req)
	if err != nil {
		s.logger.Error(ctx, "Failed to update example", "error", err, "id", id)
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{ID: id}
	}

	s.logger.Info(ctx, "Example updated", "id", id)
	return example, nil
}

// Delete removes the example with id and returns the store's result
func (s *Service) Delete(ctx context.Context, id string) (_ bool, err error) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, "example.Delete", attribute.String("example.id", id))
	defer func() { observes.EndSpan(span, err) }()

	if err := s.mustExist(ctx, id); err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete example", "error", err, "id", id)
		return false, err
	}
	if !deleted {
		return false, &NotFoundError{ID: id}
	}

	s.logger.Info(ctx, "Example deleted", "id", id)
	return true, nil
}

func (s *Service) mustExist(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to check example", "error", err, "id", id)
		return err
	}
	if !exists {
		return &NotFoundError{ID: id}
	}
	return nil
}
