package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var (
	ErrCategoryNotFound = repository.ErrCategoryNotFound
	ErrServiceNotFound  = repository.ErrServiceNotFound
	ErrFormNotFound     = repository.ErrFormNotFound
	ErrMenuNotFound     = repository.ErrMenuNotFound
	ErrMenuItemNotFound = repository.ErrMenuItemNotFound
	ErrProductNotFound  = repository.ErrProductNotFound
	ErrInvalidForm      = errors.New("invalid form definition")
)

type CatalogRepository interface {
	CreateCategory(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error)
	FindCategoriesByHost(ctx context.Context, hostID uint) ([]domain.ServiceCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.ServiceCategory, error)
	CreateService(ctx context.Context, s domain.Service) (domain.Service, error)
	FindServiceByID(ctx context.Context, id uint) (domain.Service, error)
	FindServicesByHost(ctx context.Context, hostID uint) ([]domain.Service, error)
	SaveForm(ctx context.Context, form domain.CustomForm) (domain.CustomForm, error)
	FindFormByID(ctx context.Context, id uint) (domain.CustomForm, error)
	FindFormByService(ctx context.Context, serviceID uint) (domain.CustomForm, error)
	CreateMenu(ctx context.Context, menu domain.MenuCard) (domain.MenuCard, error)
	FindMenusByHost(ctx context.Context, hostID uint) ([]domain.MenuCard, error)
	FindMenuByID(ctx context.Context, id uint) (domain.MenuCard, error)
	FindMenuItemByID(ctx context.Context, id uint) (domain.MenuItem, error)
	FindMenuItemsByIDs(ctx context.Context, ids []uint) (map[uint]domain.MenuItem, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	FindProducts(ctx context.Context, category string) ([]domain.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uint) (map[uint]domain.Product, error)
}

type CatalogService struct {
	repo  CatalogRepository
	hosts HostLookup
}

func NewCatalogService(repo CatalogRepository, hosts HostLookup) *CatalogService {
	return &CatalogService{
		repo:  repo,
		hosts: hosts,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error) {
	if _, err := s.hosts.FindByID(ctx, c.HostID); err != nil {
		return domain.ServiceCategory{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	created, err := s.repo.CreateCategory(ctx, c)
	if err != nil {
		return domain.ServiceCategory{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, hostID uint) ([]domain.ServiceCategory, error) {
	categories, err := s.repo.FindCategoriesByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCategoriesByHost -> %w", err)
	}

	return categories, nil
}

func (s *CatalogService) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if svc.CategoryID != nil {
		category, err := s.repo.FindCategoryByID(ctx, *svc.CategoryID)
		if err != nil {
			return domain.Service{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
		}
		if category.HostID != svc.HostID {
			return domain.Service{}, fmt.Errorf("%w: category %d", ErrForeignHost, category.ID)
		}
	} else if _, err := s.hosts.FindByID(ctx, svc.HostID); err != nil {
		return domain.Service{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	svc.FormID = nil
	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return domain.Service{}, fmt.Errorf("s.repo.CreateService -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uint) (domain.Service, error) {
	svc, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		return domain.Service{}, fmt.Errorf("s.repo.FindServiceByID -> %w", err)
	}

	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context, hostID uint) ([]domain.Service, error) {
	services, err := s.repo.FindServicesByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindServicesByHost -> %w", err)
	}

	return services, nil
}

// SaveForm creates or replaces the form bound to a service.
func (s *CatalogService) SaveForm(ctx context.Context, serviceID uint, form domain.CustomForm) (domain.CustomForm, error) {
	svc, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return domain.CustomForm{}, fmt.Errorf("s.repo.FindServiceByID -> %w", err)
	}

	if err = validateFields(form.Fields); err != nil {
		return domain.CustomForm{}, err
	}

	form.ServiceID = svc.ID
	form.HostID = svc.HostID
	if form.Name == "" {
		form.Name = svc.Name
	}

	saved, err := s.repo.SaveForm(ctx, form)
	if err != nil {
		return domain.CustomForm{}, fmt.Errorf("s.repo.SaveForm -> %w", err)
	}

	return saved, nil
}

func (s *CatalogService) GetForm(ctx context.Context, serviceID uint) (domain.CustomForm, error) {
	form, err := s.repo.FindFormByService(ctx, serviceID)
	if err != nil {
		return domain.CustomForm{}, fmt.Errorf("s.repo.FindFormByService -> %w", err)
	}

	return form, nil
}

func (s *CatalogService) CreateMenu(ctx context.Context, menu domain.MenuCard) (domain.MenuCard, error) {
	if _, err := s.hosts.FindByID(ctx, menu.HostID); err != nil {
		return domain.MenuCard{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	for _, c := range menu.Categories {
		for _, item := range c.Items {
			if item.Price.IsNegative() {
				return domain.MenuCard{}, fmt.Errorf("%w: menu item %q", domain.ErrInvalidAmount, item.Name)
			}
		}
	}

	created, err := s.repo.CreateMenu(ctx, menu)
	if err != nil {
		return domain.MenuCard{}, fmt.Errorf("s.repo.CreateMenu -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) ListMenus(ctx context.Context, hostID uint) ([]domain.MenuCard, error) {
	menus, err := s.repo.FindMenusByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMenusByHost -> %w", err)
	}

	return menus, nil
}

func (s *CatalogService) GetMenu(ctx context.Context, id uint) (domain.MenuCard, error) {
	menu, err := s.repo.FindMenuByID(ctx, id)
	if err != nil {
		return domain.MenuCard{}, fmt.Errorf("s.repo.FindMenuByID -> %w", err)
	}

	return menu, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.CreateProduct -> %w", err)
	}

	return created, nil
}

// ListProducts returns every product, or the products of one category when
// category is not empty.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.FindProducts(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindProducts -> %w", err)
	}

	return products, nil
}

func validateFields(fields []domain.FormField) error {
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if strings.TrimSpace(f.ID) == "" {
			return fmt.Errorf("%w: field %d has no id", ErrInvalidForm, i)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: duplicate field id %q", ErrInvalidForm, f.ID)
		}
		seen[f.ID] = true

		switch f.Type {
		case domain.FieldText, domain.FieldNumber, domain.FieldDate:
		case domain.FieldSelect, domain.FieldMultiSelect:
			if len(f.Options) == 0 {
				return fmt.Errorf("%w: field %q needs options", ErrInvalidForm, f.ID)
			}
		default:
			return fmt.Errorf("%w: field %q has type %q", ErrInvalidForm, f.ID, f.Type)
		}
	}
	return nil
}
