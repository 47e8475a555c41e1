package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// AttributeService manages EAV attribute definitions.
type AttributeService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.AttributeService = (*AttributeService)(nil)

func NewAttributeService(repo repository.Querier, logger *slog.Logger) *AttributeService {
	return &AttributeService{repo: repo, logger: logger}
}

func (s *AttributeService) List(ctx context.Context) ([]domain.Attribute, error) {
	const op = "attribute.list"

	attrs, err := s.repo.ListAttributes(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list attributes")
	}
	if attrs == nil {
		attrs = []domain.Attribute{}
	}
	return attrs, nil
}

// Create defines a new attribute. A taken code surfaces as a field-level
// validation error, as does an unknown type.
func (s *AttributeService) Create(ctx context.Context, params domain.CreateAttributeParams) (*domain.Attribute, error) {
	const op = "attribute.create"

	if !domain.ValidAttributeType(params.Type) {
		return nil, domain.NewValidationError(op, "type", "The selected type is invalid.")
	}

	attr, err := s.repo.CreateAttribute(ctx, repository.CreateAttributeParams{
		Name: params.Name,
		Code: params.Code,
		Type: params.Type,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.NewValidationError(op, "code", "The code has already been taken.")
		}
		return nil, domain.Internal(err, op, "failed to create attribute")
	}

	s.logger.Info("attribute created",
		slog.Int64("attribute_id", attr.ID),
		slog.String("code", attr.Code),
	)
	return &attr, nil
}

// Delete removes an attribute and, via cascade, every product value for it.
func (s *AttributeService) Delete(ctx context.Context, id int64) error {
	const op = "attribute.delete"

	err := s.repo.DeleteAttribute(ctx, id)
	if errors.Is(err, repository.ErrNoRows) {
		return domain.ErrAttributeNotFound
	}
	if err != nil {
		return domain.Internal(err, op, "failed to delete attribute")
	}

	s.logger.Info("attribute deleted", slog.Int64("attribute_id", id))
	return nil
}
