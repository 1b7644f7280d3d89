package shoppinglist

import (
	"context"
	"strconv"
	"strings"

	dom "example.com/shopping-list/internal/domain/shoppinglist"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, l *dom.List) (*dom.List, error) {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return nil, dom.ErrListInvalidName
	}
	return s.repo.Create(ctx, l)
}

func (s *Service) Update(ctx context.Context, l *dom.List) (*dom.List, error) {
	existed, err := s.repo.GetByID(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(l.Name); name != "" {
		existed.Name = name
	}
	if l.Notes != "" {
		existed.Notes = l.Notes
	}

	return s.repo.Update(ctx, existed)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.List, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*dom.List, error) {
	return s.repo.List(ctx)
}

// GetEntityByID resolves the textual list identifier used by the product
// service into the owning list.
func (s *Service) GetEntityByID(ctx context.Context, listID string) (*dom.List, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(listID), 10, 64)
	if err != nil {
		return nil, dom.ErrInvalidListID
	}
	return s.repo.GetByID(ctx, id)
}
