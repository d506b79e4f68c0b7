package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type VenueDAO interface {
	InsertSite(ctx context.Context, site dao.Site) (dao.Site, error)
	FindSitesByHost(ctx context.Context, hostID uint) ([]dao.Site, error)
	FindSiteByID(ctx context.Context, id uint) (dao.Site, error)
	InsertLocation(ctx context.Context, loc dao.Location) (dao.Location, error)
	FindLocationByID(ctx context.Context, id uint) (dao.Location, error)
	FindLocationByRef(ctx context.Context, hostID uint, refID string) (dao.Location, error)
	FindLocationsByHost(ctx context.Context, hostID uint) ([]dao.Location, error)
	FindLocationsByIDs(ctx context.Context, ids []uint) ([]dao.Location, error)
	InsertTag(ctx context.Context, tag dao.Tag) (dao.Tag, error)
	FindTagsByHost(ctx context.Context, hostID uint) ([]dao.Tag, error)
	DeleteTag(ctx context.Context, hostID, tagID uint) (int, error)
}

type VenueRepository struct {
	dao VenueDAO
}

func NewVenueRepository(dao VenueDAO) *VenueRepository {
	return &VenueRepository{dao: dao}
}

func (r *VenueRepository) CreateSite(ctx context.Context, site domain.Site) (domain.Site, error) {
	created, err := r.dao.InsertSite(ctx, dao.Site{
		Name:   site.Name,
		HostID: site.HostID,
		Logo:   site.Logo,
		Color:  site.Color,
	})
	if err != nil {
		return domain.Site{}, fmt.Errorf("r.dao.InsertSite -> %w", err)
	}
	return siteToDomain(created), nil
}

func (r *VenueRepository) FindSitesByHost(ctx context.Context, hostID uint) ([]domain.Site, error) {
	found, err := r.dao.FindSitesByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSitesByHost -> %w", err)
	}

	sites := make([]domain.Site, 0, len(found))
	for _, s := range found {
		sites = append(sites, siteToDomain(s))
	}
	return sites, nil
}

func (r *VenueRepository) FindSiteByID(ctx context.Context, id uint) (domain.Site, error) {
	found, err := r.dao.FindSiteByID(ctx, id)
	if err != nil {
		return domain.Site{}, fmt.Errorf("r.dao.FindSiteByID -> %w", err)
	}
	return siteToDomain(found), nil
}

func (r *VenueRepository) CreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error) {
	tagIDs, err := dao.EncodeIDs(loc.TagIDs)
	if err != nil {
		return domain.Location{}, fmt.Errorf("dao.EncodeIDs -> %w", err)
	}

	created, err := r.dao.InsertLocation(ctx, dao.Location{
		Name:         loc.Name,
		Type:         string(loc.Type),
		HostID:       loc.HostID,
		GlobalSiteID: loc.GlobalSiteID,
		ParentID:     loc.ParentID,
		Capacity:     loc.Capacity,
		Price:        loc.Price,
		PriceMode:    string(loc.PriceMode),
		TagIDs:       tagIDs,
		MenuID:       loc.MenuID,
		RefID:        loc.RefID,
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.InsertLocation -> %w", err)
	}
	return locationToDomain(created)
}

func (r *VenueRepository) FindLocationByID(ctx context.Context, id uint) (domain.Location, error) {
	found, err := r.dao.FindLocationByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.FindLocationByID -> %w", err)
	}
	return locationToDomain(found)
}

func (r *VenueRepository) FindLocationByRef(ctx context.Context, hostID uint, refID string) (domain.Location, error) {
	found, err := r.dao.FindLocationByRef(ctx, hostID, refID)
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.FindLocationByRef -> %w", err)
	}
	return locationToDomain(found)
}

func (r *VenueRepository) FindLocationsByHost(ctx context.Context, hostID uint) ([]domain.Location, error) {
	found, err := r.dao.FindLocationsByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLocationsByHost -> %w", err)
	}
	return locationsToDomain(found)
}

// LocationNames resolves location ids to names.
func (r *VenueRepository) LocationNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	found, err := r.dao.FindLocationsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLocationsByIDs -> %w", err)
	}

	names := make(map[uint]string, len(found))
	for _, l := range found {
		names[l.ID] = l.Name
	}
	return names, nil
}

func (r *VenueRepository) CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	created, err := r.dao.InsertTag(ctx, dao.Tag{Name: tag.Name, HostID: tag.HostID})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("r.dao.InsertTag -> %w", err)
	}
	return domain.Tag{ID: created.ID, Name: created.Name, HostID: created.HostID}, nil
}

func (r *VenueRepository) FindTagsByHost(ctx context.Context, hostID uint) ([]domain.Tag, error) {
	found, err := r.dao.FindTagsByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTagsByHost -> %w", err)
	}

	tags := make([]domain.Tag, 0, len(found))
	for _, t := range found {
		tags = append(tags, domain.Tag{ID: t.ID, Name: t.Name, HostID: t.HostID})
	}
	return tags, nil
}

func (r *VenueRepository) DeleteTag(ctx context.Context, hostID, tagID uint) (int, error) {
	touched, err := r.dao.DeleteTag(ctx, hostID, tagID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteTag -> %w", err)
	}
	return touched, nil
}

func siteToDomain(s dao.Site) domain.Site {
	return domain.Site{
		ID:        s.ID,
		Name:      s.Name,
		HostID:    s.HostID,
		Logo:      s.Logo,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func locationToDomain(l dao.Location) (domain.Location, error) {
	tagIDs, err := dao.DecodeIDs(l.TagIDs)
	if err != nil {
		return domain.Location{}, fmt.Errorf("location %d tag ids: %w", l.ID, err)
	}

	return domain.Location{
		ID:           l.ID,
		Name:         l.Name,
		Type:         domain.LocationType(l.Type),
		HostID:       l.HostID,
		GlobalSiteID: l.GlobalSiteID,
		ParentID:     l.ParentID,
		Capacity:     l.Capacity,
		Price:        l.Price,
		PriceMode:    domain.PriceMode(l.PriceMode),
		TagIDs:       tagIDs,
		MenuID:       l.MenuID,
		RefID:        l.RefID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}, nil
}

func locationsToDomain(found []dao.Location) ([]domain.Location, error) {
	locs := make([]domain.Location, 0, len(found))
	for _, l := range found {
		loc, err := locationToDomain(l)
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}
