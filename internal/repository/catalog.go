package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type CatalogDAO interface {
	InsertCategory(ctx context.Context, c dao.ServiceCategory) (dao.ServiceCategory, error)
	FindCategoriesByHost(ctx context.Context, hostID uint) ([]dao.ServiceCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.ServiceCategory, error)
	InsertService(ctx context.Context, s dao.Service) (dao.Service, error)
	FindServiceByID(ctx context.Context, id uint) (dao.Service, error)
	FindServicesByHost(ctx context.Context, hostID uint) ([]dao.Service, error)
	FindServicesByIDs(ctx context.Context, ids []uint) ([]dao.Service, error)
	UpsertForm(ctx context.Context, form dao.CustomForm) (dao.CustomForm, error)
	FindFormByID(ctx context.Context, id uint) (dao.CustomForm, error)
	FindFormByService(ctx context.Context, serviceID uint) (dao.CustomForm, error)
	InsertMenu(ctx context.Context, menu dao.MenuCard) (dao.MenuCard, error)
	FindMenusByHost(ctx context.Context, hostID uint) ([]dao.MenuCard, error)
	FindMenuByID(ctx context.Context, id uint) (dao.MenuCard, error)
	FindMenuItemByID(ctx context.Context, id uint) (dao.MenuItem, error)
	FindMenuItemsByIDs(ctx context.Context, ids []uint) ([]dao.MenuItem, error)
	InsertProduct(ctx context.Context, p dao.Product) (dao.Product, error)
	FindProducts(ctx context.Context, category string) ([]dao.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uint) ([]dao.Product, error)
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{dao: dao}
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error) {
	created, err := r.dao.InsertCategory(ctx, dao.ServiceCategory{
		Name:        c.Name,
		Description: c.Description,
		HostID:      c.HostID,
	})
	if err != nil {
		return domain.ServiceCategory{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}
	return categoryToDomain(created), nil
}

func (r *CatalogRepository) FindCategoriesByHost(ctx context.Context, hostID uint) ([]domain.ServiceCategory, error) {
	found, err := r.dao.FindCategoriesByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCategoriesByHost -> %w", err)
	}

	cats := make([]domain.ServiceCategory, 0, len(found))
	for _, c := range found {
		cats = append(cats, categoryToDomain(c))
	}
	return cats, nil
}

func (r *CatalogRepository) FindCategoryByID(ctx context.Context, id uint) (domain.ServiceCategory, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.ServiceCategory{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}
	return categoryToDomain(found), nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, s domain.Service) (domain.Service, error) {
	targets, err := dao.EncodeIDs(s.TargetLocationIDs)
	if err != nil {
		return domain.Service{}, fmt.Errorf("dao.EncodeIDs -> %w", err)
	}

	created, err := r.dao.InsertService(ctx, dao.Service{
		Name:              s.Name,
		Description:       s.Description,
		HostID:            s.HostID,
		CategoryID:        s.CategoryID,
		Price:             s.Price,
		Currency:          s.Currency,
		FormID:            s.FormID,
		TargetLocationIDs: targets,
		LoginRequired:     s.LoginRequired,
	})
	if err != nil {
		return domain.Service{}, fmt.Errorf("r.dao.InsertService -> %w", err)
	}
	return serviceToDomain(created)
}

func (r *CatalogRepository) FindServiceByID(ctx context.Context, id uint) (domain.Service, error) {
	found, err := r.dao.FindServiceByID(ctx, id)
	if err != nil {
		return domain.Service{}, fmt.Errorf("r.dao.FindServiceByID -> %w", err)
	}
	return serviceToDomain(found)
}

func (r *CatalogRepository) FindServicesByHost(ctx context.Context, hostID uint) ([]domain.Service, error) {
	found, err := r.dao.FindServicesByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindServicesByHost -> %w", err)
	}

	services := make([]domain.Service, 0, len(found))
	for _, s := range found {
		svc, err := serviceToDomain(s)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, nil
}

func (r *CatalogRepository) ServiceNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	found, err := r.dao.FindServicesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindServicesByIDs -> %w", err)
	}

	names := make(map[uint]string, len(found))
	for _, s := range found {
		names[s.ID] = s.Name
	}
	return names, nil
}

func (r *CatalogRepository) SaveForm(ctx context.Context, form domain.CustomForm) (domain.CustomForm, error) {
	fields, err := encodeJSON(form.Fields)
	if err != nil {
		return domain.CustomForm{}, err
	}

	saved, err := r.dao.UpsertForm(ctx, dao.CustomForm{
		HostID:    form.HostID,
		ServiceID: form.ServiceID,
		Name:      form.Name,
		Fields:    fields,
	})
	if err != nil {
		return domain.CustomForm{}, fmt.Errorf("r.dao.UpsertForm -> %w", err)
	}
	return formToDomain(saved)
}

func (r *CatalogRepository) FindFormByID(ctx context.Context, id uint) (domain.CustomForm, error) {
	found, err := r.dao.FindFormByID(ctx, id)
	if err != nil {
		return domain.CustomForm{}, fmt.Errorf("r.dao.FindFormByID -> %w", err)
	}
	return formToDomain(found)
}

func (r *CatalogRepository) FindFormByService(ctx context.Context, serviceID uint) (domain.CustomForm, error) {
	found, err := r.dao.FindFormByService(ctx, serviceID)
	if err != nil {
		return domain.CustomForm{}, fmt.Errorf("r.dao.FindFormByService -> %w", err)
	}
	return formToDomain(found)
}

func (r *CatalogRepository) CreateMenu(ctx context.Context, menu domain.MenuCard) (domain.MenuCard, error) {
	card := dao.MenuCard{HostID: menu.HostID, Name: menu.Name}
	for _, c := range menu.Categories {
		cat := dao.MenuCategory{Name: c.Name}
		for _, item := range c.Items {
			groups, err := encodeJSON(item.OptionGroups)
			if err != nil {
				return domain.MenuCard{}, err
			}
			cat.Items = append(cat.Items, dao.MenuItem{
				HostID:       menu.HostID,
				Name:         item.Name,
				Description:  item.Description,
				Price:        item.Price,
				Configurable: item.Configurable,
				OptionGroups: groups,
			})
		}
		card.Categories = append(card.Categories, cat)
	}

	created, err := r.dao.InsertMenu(ctx, card)
	if err != nil {
		return domain.MenuCard{}, fmt.Errorf("r.dao.InsertMenu -> %w", err)
	}
	return menuToDomain(created)
}

func (r *CatalogRepository) FindMenusByHost(ctx context.Context, hostID uint) ([]domain.MenuCard, error) {
	found, err := r.dao.FindMenusByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMenusByHost -> %w", err)
	}

	menus := make([]domain.MenuCard, 0, len(found))
	for _, m := range found {
		menu, err := menuToDomain(m)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

func (r *CatalogRepository) FindMenuByID(ctx context.Context, id uint) (domain.MenuCard, error) {
	found, err := r.dao.FindMenuByID(ctx, id)
	if err != nil {
		return domain.MenuCard{}, fmt.Errorf("r.dao.FindMenuByID -> %w", err)
	}
	return menuToDomain(found)
}

func (r *CatalogRepository) FindMenuItemByID(ctx context.Context, id uint) (domain.MenuItem, error) {
	found, err := r.dao.FindMenuItemByID(ctx, id)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("r.dao.FindMenuItemByID -> %w", err)
	}
	return menuItemToDomain(found)
}

// FindMenuItemsByIDs returns the items keyed by id, option groups decoded.
func (r *CatalogRepository) FindMenuItemsByIDs(ctx context.Context, ids []uint) (map[uint]domain.MenuItem, error) {
	found, err := r.dao.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMenuItemsByIDs -> %w", err)
	}

	items := make(map[uint]domain.MenuItem, len(found))
	for _, i := range found {
		item, err := menuItemToDomain(i)
		if err != nil {
			return nil, err
		}
		items[item.ID] = item
	}
	return items, nil
}

func (r *CatalogRepository) MenuItemNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	found, err := r.dao.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMenuItemsByIDs -> %w", err)
	}

	names := make(map[uint]string, len(found))
	for _, i := range found {
		names[i.ID] = i.Name
	}
	return names, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := r.dao.InsertProduct(ctx, dao.Product{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		InStock:     p.InStock,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.InsertProduct -> %w", err)
	}
	return productToDomain(created), nil
}

func (r *CatalogRepository) FindProducts(ctx context.Context, category string) ([]domain.Product, error) {
	found, err := r.dao.FindProducts(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindProducts -> %w", err)
	}

	products := make([]domain.Product, 0, len(found))
	for _, p := range found {
		products = append(products, productToDomain(p))
	}
	return products, nil
}

func (r *CatalogRepository) FindProductsByIDs(ctx context.Context, ids []uint) (map[uint]domain.Product, error) {
	found, err := r.dao.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindProductsByIDs -> %w", err)
	}

	products := make(map[uint]domain.Product, len(found))
	for _, p := range found {
		products[p.ID] = productToDomain(p)
	}
	return products, nil
}

func categoryToDomain(c dao.ServiceCategory) domain.ServiceCategory {
	return domain.ServiceCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		HostID:      c.HostID,
	}
}

func serviceToDomain(s dao.Service) (domain.Service, error) {
	targets, err := dao.DecodeIDs(s.TargetLocationIDs)
	if err != nil {
		return domain.Service{}, fmt.Errorf("service %d target locations: %w", s.ID, err)
	}

	return domain.Service{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		HostID:            s.HostID,
		CategoryID:        s.CategoryID,
		Price:             s.Price,
		Currency:          s.Currency,
		FormID:            s.FormID,
		TargetLocationIDs: targets,
		LoginRequired:     s.LoginRequired,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}

func formToDomain(f dao.CustomForm) (domain.CustomForm, error) {
	form := domain.CustomForm{
		ID:        f.ID,
		HostID:    f.HostID,
		ServiceID: f.ServiceID,
		Name:      f.Name,
		Fields:    []domain.FormField{},
	}
	if err := decodeJSON(f.Fields, &form.Fields); err != nil {
		return domain.CustomForm{}, fmt.Errorf("form %d fields: %w", f.ID, err)
	}
	return form, nil
}

func menuToDomain(m dao.MenuCard) (domain.MenuCard, error) {
	menu := domain.MenuCard{
		ID:         m.ID,
		HostID:     m.HostID,
		Name:       m.Name,
		Categories: make([]domain.MenuCategory, 0, len(m.Categories)),
	}
	for _, c := range m.Categories {
		cat := domain.MenuCategory{
			ID:         c.ID,
			MenuCardID: c.MenuCardID,
			Name:       c.Name,
			Items:      make([]domain.MenuItem, 0, len(c.Items)),
		}
		for _, i := range c.Items {
			item, err := menuItemToDomain(i)
			if err != nil {
				return domain.MenuCard{}, err
			}
			cat.Items = append(cat.Items, item)
		}
		menu.Categories = append(menu.Categories, cat)
	}
	return menu, nil
}

func menuItemToDomain(i dao.MenuItem) (domain.MenuItem, error) {
	item := domain.MenuItem{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		HostID:       i.HostID,
		Name:         i.Name,
		Description:  i.Description,
		Price:        i.Price,
		Configurable: i.Configurable,
	}
	if err := decodeJSON(i.OptionGroups, &item.OptionGroups); err != nil {
		return domain.MenuItem{}, fmt.Errorf("menu item %d option groups: %w", i.ID, err)
	}
	return item, nil
}

func productToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
	}
}
