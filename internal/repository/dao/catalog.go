package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	HostID      uint `gorm:"not null;index"`
}

type Service struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"not null"`
	Description       string
	HostID            uint `gorm:"not null;index"`
	CategoryID        *uint
	Price             decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Currency          string
	FormID            *uint
	TargetLocationIDs datatypes.JSON
	LoginRequired     bool `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CustomForm struct {
	ID        uint `gorm:"primaryKey"`
	HostID    uint `gorm:"not null;index"`
	ServiceID uint `gorm:"not null;uniqueIndex"`
	Name      string
	Fields    datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MenuCard struct {
	ID         uint   `gorm:"primaryKey"`
	HostID     uint   `gorm:"not null;index"`
	Name       string `gorm:"not null"`
	Categories []MenuCategory `gorm:"foreignKey:MenuCardID"`
}

type MenuCategory struct {
	ID         uint       `gorm:"primaryKey"`
	MenuCardID uint       `gorm:"not null;index"`
	Name       string     `gorm:"not null"`
	Items      []MenuItem `gorm:"foreignKey:CategoryID"`
}

type MenuItem struct {
	ID           uint   `gorm:"primaryKey"`
	CategoryID   uint   `gorm:"not null;index"`
	HostID       uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Description  string
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Configurable bool            `gorm:"not null"`
	OptionGroups datatypes.JSON
}

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Category    string          `gorm:"not null;index"`
	InStock     bool            `gorm:"not null"`
	CreatedAt   time.Time
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{db: db}
}

func (d *CatalogDAO) InsertCategory(ctx context.Context, c ServiceCategory) (ServiceCategory, error) {
	if err := d.db.WithContext(ctx).Create(&c).Error; err != nil {
		return ServiceCategory{}, err
	}
	return c, nil
}

func (d *CatalogDAO) FindCategoriesByHost(ctx context.Context, hostID uint) ([]ServiceCategory, error) {
	var cats []ServiceCategory
	if err := d.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (d *CatalogDAO) FindCategoryByID(ctx context.Context, id uint) (ServiceCategory, error) {
	var c ServiceCategory
	if err := d.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return ServiceCategory{}, notFound(err, ErrCategoryNotFound)
	}
	return c, nil
}

func (d *CatalogDAO) InsertService(ctx context.Context, s Service) (Service, error) {
	if err := d.db.WithContext(ctx).Create(&s).Error; err != nil {
		return Service{}, err
	}
	return s, nil
}

func (d *CatalogDAO) FindServiceByID(ctx context.Context, id uint) (Service, error) {
	var s Service
	if err := d.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return Service{}, notFound(err, ErrServiceNotFound)
	}
	return s, nil
}

func (d *CatalogDAO) FindServicesByHost(ctx context.Context, hostID uint) ([]Service, error) {
	var services []Service
	if err := d.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (d *CatalogDAO) FindServicesByIDs(ctx context.Context, ids []uint) ([]Service, error) {
	var services []Service
	if len(ids) == 0 {
		return services, nil
	}
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// UpsertForm stores the form of a service, replacing any previous one, and
// points the service at it.
func (d *CatalogDAO) UpsertForm(ctx context.Context, form CustomForm) (CustomForm, error) {
	var stored CustomForm
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "fields", "updated_at"}),
		}).Create(&form).Error
		if err != nil {
			return err
		}

		if err := tx.Where("service_id = ?", form.ServiceID).First(&stored).Error; err != nil {
			return err
		}

		return tx.Model(&Service{ID: stored.ServiceID}).Update("form_id", stored.ID).Error
	})
	if err != nil {
		return CustomForm{}, err
	}

	return stored, nil
}

func (d *CatalogDAO) FindFormByID(ctx context.Context, id uint) (CustomForm, error) {
	var f CustomForm
	if err := d.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return CustomForm{}, notFound(err, ErrFormNotFound)
	}
	return f, nil
}

func (d *CatalogDAO) FindFormByService(ctx context.Context, serviceID uint) (CustomForm, error) {
	var f CustomForm
	if err := d.db.WithContext(ctx).Where("service_id = ?", serviceID).First(&f).Error; err != nil {
		return CustomForm{}, notFound(err, ErrFormNotFound)
	}
	return f, nil
}

// InsertMenu creates the card with its categories and items.
func (d *CatalogDAO) InsertMenu(ctx context.Context, menu MenuCard) (MenuCard, error) {
	if err := d.db.WithContext(ctx).Create(&menu).Error; err != nil {
		return MenuCard{}, err
	}
	return menu, nil
}

func (d *CatalogDAO) FindMenusByHost(ctx context.Context, hostID uint) ([]MenuCard, error) {
	var menus []MenuCard
	err := d.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Categories.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("host_id = ?", hostID).
		Order("id").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (d *CatalogDAO) FindMenuByID(ctx context.Context, id uint) (MenuCard, error) {
	var menu MenuCard
	err := d.db.WithContext(ctx).
		Preload("Categories").
		Preload("Categories.Items").
		First(&menu, id).Error
	if err != nil {
		return MenuCard{}, notFound(err, ErrMenuNotFound)
	}
	return menu, nil
}

func (d *CatalogDAO) FindMenuItemByID(ctx context.Context, id uint) (MenuItem, error) {
	var item MenuItem
	if err := d.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return MenuItem{}, notFound(err, ErrMenuItemNotFound)
	}
	return item, nil
}

func (d *CatalogDAO) FindMenuItemsByIDs(ctx context.Context, ids []uint) ([]MenuItem, error) {
	var items []MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (d *CatalogDAO) InsertProduct(ctx context.Context, p Product) (Product, error) {
	if err := d.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

// FindProducts lists products, limited to one category when category is set.
func (d *CatalogDAO) FindProducts(ctx context.Context, category string) ([]Product, error) {
	var products []Product

	q := d.db.WithContext(ctx).Order("id")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (d *CatalogDAO) FindProductsByIDs(ctx context.Context, ids []uint) ([]Product, error) {
	var products []Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
