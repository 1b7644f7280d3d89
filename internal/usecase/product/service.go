package product

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	dom "example.com/shopping-list/internal/domain/product"
	domlist "example.com/shopping-list/internal/domain/shoppinglist"
)

const (
	detailSeparator = ": "
	newLine         = "\n"
	space           = " "
)

type ProductConverter interface {
	ToItem(p *dom.Product) dom.Item
	ToEntity(item dom.Item) (*dom.Product, error)
	ParsePrice(text string) (float64, error)
	FormatPrice(v float64) string
}

// ListResolver resolves a list identifier to the owning shopping list.
type ListResolver interface {
	GetEntityByID(ctx context.Context, listID string) (*domlist.List, error)
}

// AutoCompleteCache stores the autocomplete index between writes. Set must
// reject an index built under a generation that Invalidate has since bumped.
type AutoCompleteCache interface {
	Get(ctx context.Context) (*dom.AutoCompleteLists, bool)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, lists *dom.AutoCompleteLists, generation int64) error
	Invalidate(ctx context.Context) error
}

// InfoLabels are the captions used by GetInfo.
type InfoLabels struct {
	Items string
	Total string
}

var DefaultInfoLabels = InfoLabels{Items: "Items", Total: "Total"}

type Option func(*Service)

func WithAutoCompleteCache(cache AutoCompleteCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithInfoLabels(labels InfoLabels) Option {
	return func(s *Service) {
		s.labels = labels
	}
}

type Service struct {
	repo        dom.Repository
	converter   ProductConverter
	lists       ListResolver
	cache       AutoCompleteCache
	labels      InfoLabels
	comparators map[Criterion]compareFunc
}

func NewService(repo dom.Repository, converter ProductConverter, lists ListResolver, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		converter: converter,
		lists:     lists,
		labels:    DefaultInfoLabels,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.comparators = s.newComparators()
	return s
}

// SaveOrUpdate persists the item into the given list and writes the
// generated identifier back into it.
func (s *Service) SaveOrUpdate(ctx context.Context, item *dom.Item, listID string) error {
	entity, err := s.converter.ToEntity(*item)
	if err != nil {
		return err
	}

	list, err := s.lists.GetEntityByID(ctx, listID)
	if err != nil {
		return err
	}
	entity.ListID = list.ID

	var saved *dom.Product
	if entity.ID == 0 {
		saved, err = s.repo.Create(ctx, entity)
	} else {
		saved, err = s.repo.Update(ctx, entity)
	}
	if err != nil {
		return err
	}

	item.ID = strconv.FormatInt(saved.ID, 10)
	item.ListID = strconv.FormatInt(saved.ListID, 10)
	s.invalidateAutoComplete(ctx)
	return nil
}

// GetByID returns nil without an error when no product matches.
func (s *Service) GetByID(ctx context.Context, id string) (*dom.Item, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, dom.ErrProductNotFound) {
			return nil, nil
		}
		return nil, err
	}

	item := s.converter.ToItem(p)
	return &item, nil
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.deleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateAutoComplete(ctx)
	return nil
}

// DeleteSelected deletes the items flagged for deletion. A failed deletion is
// logged and does not stop the remaining ones.
func (s *Service) DeleteSelected(ctx context.Context, items []dom.Item) {
	const op = "ProductService.DeleteSelected"
	log := slog.With("op", op)

	for _, item := range items {
		if !item.SelectedForDeletion {
			continue
		}
		if err := s.deleteByID(ctx, item.ID); err != nil {
			log.Warn("failed to delete product", "id", item.ID, "err", err)
		}
	}
	s.invalidateAutoComplete(ctx)
}

// DeleteAllFromList deletes every product of the list one by one.
func (s *Service) DeleteAllFromList(ctx context.Context, listID string) error {
	const op = "ProductService.DeleteAllFromList"
	log := slog.With("op", op)

	items, err := s.GetAllProducts(ctx, listID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := s.deleteByID(ctx, item.ID); err != nil {
			log.Warn("failed to delete product", "id", item.ID, "list_id", listID, "err", err)
		}
	}
	s.invalidateAutoComplete(ctx)
	return nil
}

func (s *Service) GetAllProducts(ctx context.Context, listID string) ([]dom.Item, error) {
	id, err := parseID(listID)
	if err != nil {
		return nil, err
	}

	entities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dom.Item, 0, len(entities))
	for _, e := range entities {
		if e.ListID != id {
			continue
		}
		items = append(items, s.converter.ToItem(e))
	}
	return items, nil
}

// MoveSelectedToEnd returns a new slice with unchecked items first and checked
// items after, both in their original relative order.
func (s *Service) MoveSelectedToEnd(items []dom.Item) []dom.Item {
	result := make([]dom.Item, 0, len(items))
	for _, item := range items {
		if !item.Checked {
			result = append(result, item)
		}
	}
	for _, item := range items {
		if item.Checked {
			result = append(result, item)
		}
	}
	return result
}

// GetInfo summarizes the list as "<items>: <n>\n<total>: <amount> <currency>\n\n".
func (s *Service) GetInfo(ctx context.Context, listID, currency string) (string, error) {
	items, err := s.GetAllProducts(ctx, listID)
	if err != nil {
		return "", err
	}
	total, err := s.ComputeTotals(items)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(s.labels.Items)
	sb.WriteString(detailSeparator)
	sb.WriteString(strconv.Itoa(total.Count))
	sb.WriteString(newLine)
	sb.WriteString(s.labels.Total)
	sb.WriteString(detailSeparator)
	sb.WriteString(total.Amount)
	sb.WriteString(space)
	sb.WriteString(currency)
	sb.WriteString(newLine)
	sb.WriteString(newLine)
	return sb.String(), nil
}

// GetAutoCompleteLists folds every stored product, across all lists, into
// one index.
func (s *Service) GetAutoCompleteLists(ctx context.Context) (*dom.AutoCompleteLists, error) {
	const op = "ProductService.GetAutoCompleteLists"

	log := slog.With("op", op)

	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		if lists, ok := s.cache.Get(ctx); ok {
			return lists, nil
		}
		// read before listing so a write racing with the fold outdates it
		gen, err := s.cache.Generation(ctx)
		if err != nil {
			log.Warn("failed to read autocomplete generation", "err", err)
		} else {
			generation, cacheable = gen, true
		}
	}

	entities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	lists := dom.NewAutoCompleteLists()
	for _, e := range entities {
		lists.Update(s.converter.ToItem(e))
	}

	if cacheable {
		err := s.cache.Set(ctx, lists, generation)
		switch {
		case errors.Is(err, dom.ErrAutoCompleteOutdated):
			log.Debug("autocomplete lists changed while building, not cached")
		case err != nil:
			log.Warn("failed to cache autocomplete lists", "err", err)
		}
	}
	return lists, nil
}

func (s *Service) deleteByID(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, productID)
}

func (s *Service) invalidateAutoComplete(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate autocomplete lists", "op", "ProductService.invalidateAutoComplete", "err", err)
	}
}
