package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var (
	ErrSiteNotFound     = repository.ErrSiteNotFound
	ErrLocationNotFound = repository.ErrLocationNotFound
	ErrTagNotFound      = repository.ErrTagNotFound
	ErrForeignHost      = errors.New("record belongs to another host")
)

type VenueRepository interface {
	CreateSite(ctx context.Context, site domain.Site) (domain.Site, error)
	FindSitesByHost(ctx context.Context, hostID uint) ([]domain.Site, error)
	FindSiteByID(ctx context.Context, id uint) (domain.Site, error)
	CreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error)
	FindLocationByID(ctx context.Context, id uint) (domain.Location, error)
	FindLocationByRef(ctx context.Context, hostID uint, refID string) (domain.Location, error)
	FindLocationsByHost(ctx context.Context, hostID uint) ([]domain.Location, error)
	CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	FindTagsByHost(ctx context.Context, hostID uint) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, hostID, tagID uint) (int, error)
}

type VenueService struct {
	repo  VenueRepository
	hosts HostLookup
}

func NewVenueService(repo VenueRepository, hosts HostLookup) *VenueService {
	return &VenueService{
		repo:  repo,
		hosts: hosts,
	}
}

// CreateSite refuses sites for hosts that do not exist.
func (s *VenueService) CreateSite(ctx context.Context, site domain.Site) (domain.Site, error) {
	if _, err := s.hosts.FindByID(ctx, site.HostID); err != nil {
		return domain.Site{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	created, err := s.repo.CreateSite(ctx, site)
	if err != nil {
		return domain.Site{}, fmt.Errorf("s.repo.CreateSite -> %w", err)
	}

	return created, nil
}

func (s *VenueService) ListSites(ctx context.Context, hostID uint) ([]domain.Site, error) {
	sites, err := s.repo.FindSitesByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSitesByHost -> %w", err)
	}

	return sites, nil
}

// CreateLocation checks the site belongs to the same host and assigns the QR
// reference id.
func (s *VenueService) CreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error) {
	site, err := s.repo.FindSiteByID(ctx, loc.GlobalSiteID)
	if err != nil {
		return domain.Location{}, fmt.Errorf("s.repo.FindSiteByID -> %w", err)
	}
	if site.HostID != loc.HostID {
		return domain.Location{}, fmt.Errorf("%w: site %d", ErrForeignHost, site.ID)
	}

	if loc.PriceMode == "" {
		loc.PriceMode = domain.PriceFixed
		if loc.Type == domain.LocationRoom {
			loc.PriceMode = domain.PricePerNight
		}
	}
	loc.RefID = uuid.NewString()

	created, err := s.repo.CreateLocation(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("s.repo.CreateLocation -> %w", err)
	}

	return created, nil
}

func (s *VenueService) ListLocations(ctx context.Context, hostID uint) ([]domain.Location, error) {
	locations, err := s.repo.FindLocationsByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindLocationsByHost -> %w", err)
	}

	return locations, nil
}

func (s *VenueService) CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	if _, err := s.hosts.FindByID(ctx, tag.HostID); err != nil {
		return domain.Tag{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	created, err := s.repo.CreateTag(ctx, tag)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("s.repo.CreateTag -> %w", err)
	}

	return created, nil
}

func (s *VenueService) ListTags(ctx context.Context, hostID uint) ([]domain.Tag, error) {
	tags, err := s.repo.FindTagsByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTagsByHost -> %w", err)
	}

	return tags, nil
}

// DeleteTag removes the tag and strips it from the host's locations. It
// returns how many locations were changed.
func (s *VenueService) DeleteTag(ctx context.Context, hostID, tagID uint) (int, error) {
	touched, err := s.repo.DeleteTag(ctx, hostID, tagID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteTag -> %w", err)
	}

	return touched, nil
}
