package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type StorefrontCatalog interface {
	FindServicesByHost(ctx context.Context, hostID uint) ([]domain.Service, error)
	FindFormByService(ctx context.Context, serviceID uint) (domain.CustomForm, error)
	FindMenuByID(ctx context.Context, id uint) (domain.MenuCard, error)
}

type ServiceOffer struct {
	domain.Service
	Form *domain.CustomForm `json:"form,omitempty"`
}

// Storefront is what a client sees after scanning the QR code of a location.
type Storefront struct {
	HostID         uint             `json:"hostId"`
	HostName       string           `json:"hostName"`
	Language       string           `json:"language,omitempty"`
	CurrencySymbol string           `json:"currencySymbol"`
	Location       domain.Location  `json:"location"`
	Services       []ServiceOffer   `json:"services"`
	Menu           *domain.MenuCard `json:"menu,omitempty"`
}

type StorefrontService struct {
	hosts     HostLookup
	locations LocationFinder
	catalog   StorefrontCatalog
}

func NewStorefrontService(hosts HostLookup, locations LocationFinder, catalog StorefrontCatalog) *StorefrontService {
	return &StorefrontService{
		hosts:     hosts,
		locations: locations,
		catalog:   catalog,
	}
}

// Browse lists the services offered at the location behind refID, each with
// its form, and the menu attached to the location.
func (s *StorefrontService) Browse(ctx context.Context, hostID uint, refID string) (Storefront, error) {
	host, err := s.hosts.FindByID(ctx, hostID)
	if err != nil {
		return Storefront{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	loc, err := s.locations.FindLocationByRef(ctx, hostID, refID)
	if err != nil {
		return Storefront{}, fmt.Errorf("s.locations.FindLocationByRef -> %w", err)
	}

	services, err := s.catalog.FindServicesByHost(ctx, hostID)
	if err != nil {
		return Storefront{}, fmt.Errorf("s.catalog.FindServicesByHost -> %w", err)
	}

	front := Storefront{
		HostID:         host.ID,
		HostName:       host.Name,
		Language:       host.Language,
		CurrencySymbol: domain.CurrencySymbol("", host.Currency),
		Location:       loc,
		Services:       make([]ServiceOffer, 0, len(services)),
	}

	for _, svc := range services {
		if !svc.AvailableAt(loc.ID) {
			continue
		}

		offer := ServiceOffer{Service: svc}
		if svc.FormID != nil {
			form, err := s.catalog.FindFormByService(ctx, svc.ID)
			if err != nil && !errors.Is(err, ErrFormNotFound) {
				return Storefront{}, fmt.Errorf("s.catalog.FindFormByService -> %w", err)
			}
			if err == nil {
				offer.Form = &form
			}
		}
		front.Services = append(front.Services, offer)
	}

	if loc.MenuID != nil {
		menu, err := s.catalog.FindMenuByID(ctx, *loc.MenuID)
		if err != nil {
			return Storefront{}, fmt.Errorf("s.catalog.FindMenuByID -> %w", err)
		}
		front.Menu = &menu
	}

	return front, nil
}
