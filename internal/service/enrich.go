package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/orderspot/connecthost-api/internal/domain"
)

// NameResolver maps a set of ids to display names. Ids without a record are
// left out of the result.
type NameResolver interface {
	ResolveNames(ctx context.Context, ids []uint) (map[uint]string, error)
}

// ResolverFunc adapts a repository method to NameResolver.
type ResolverFunc func(ctx context.Context, ids []uint) (map[uint]string, error)

func (f ResolverFunc) ResolveNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	return f(ctx, ids)
}

type HostDirectory interface {
	FindByIDs(ctx context.Context, ids []uint) (map[uint]domain.Host, error)
}

type EnrichedOrder struct {
	domain.Order
	HostName          string `json:"hostName"`
	LocationName      string `json:"locationName"`
	ServiceName       string `json:"serviceName"`
	ClientDisplayName string `json:"clientDisplayName"`
	CurrencySymbol    string `json:"currencySymbol"`
	TotalDisplay      string `json:"totalDisplay"`
	BalanceDisplay    string `json:"balanceDisplay"`
}

type EnrichedReservation struct {
	domain.Reservation
	HostName          string `json:"hostName"`
	LocationName      string `json:"locationName"`
	ClientDisplayName string `json:"clientDisplayName"`
	Nights            int    `json:"nights"`
	CurrencySymbol    string `json:"currencySymbol"`
	TotalDisplay      string `json:"totalDisplay"`
	BalanceDisplay    string `json:"balanceDisplay"`
}

type EnricherDeps struct {
	Hosts     HostDirectory
	Locations NameResolver
	Services  NameResolver
	MenuItems NameResolver
	Clients   NameResolver
	Users     NameResolver
}

// Enricher annotates orders and reservations with the names of the records
// they reference. Each name family is fetched once per batch and the
// families are fetched concurrently. One failed lookup fails the batch.
type Enricher struct {
	deps EnricherDeps
}

func NewEnricher(deps EnricherDeps) *Enricher {
	return &Enricher{deps: deps}
}

type nameTables struct {
	hosts     map[uint]domain.Host
	locations map[uint]string
	services  map[uint]string
	menuItems map[uint]string
	clients   map[uint]string
	users     map[uint]string
}

type lookupIDs struct {
	hosts, locations, services, menuItems, clients, users idSet
}

func newLookupIDs() lookupIDs {
	return lookupIDs{
		hosts:     newIDSet(),
		locations: newIDSet(),
		services:  newIDSet(),
		menuItems: newIDSet(),
		clients:   newIDSet(),
		users:     newIDSet(),
	}
}

func (e *Enricher) Orders(ctx context.Context, orders []domain.Order) ([]EnrichedOrder, error) {
	ids := newLookupIDs()
	for _, o := range orders {
		ids.hosts.add(o.HostID)
		ids.locations.addPtr(o.ChambreTableID)
		ids.services.addPtr(o.ServiceID)
		ids.menuItems.addPtr(o.MenuItemID)
		if o.ClientNom == "" {
			ids.clients.addPtr(o.ClientID)
			ids.users.addPtr(o.UserID)
		}
	}

	names, err := e.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		symbol := domain.CurrencySymbol(o.Currency, names.hosts[o.HostID].Currency)
		eo := EnrichedOrder{
			Order:             o,
			HostName:          names.hosts[o.HostID].Name,
			LocationName:      lookup(names.locations, o.ChambreTableID),
			ClientDisplayName: clientDisplayName(o.ClientNom, o.ClientID, o.UserID, names),
			CurrencySymbol:    symbol,
			TotalDisplay:      domain.FormatAmount(o.PrixTotal, symbol),
			BalanceDisplay:    domain.FormatAmount(domain.BalanceDue(o.PrixTotal, o.MontantPaye), symbol),
		}
		if o.ServiceID != nil {
			eo.ServiceName = lookup(names.services, o.ServiceID)
		} else {
			eo.ServiceName = lookup(names.menuItems, o.MenuItemID)
		}
		enriched = append(enriched, eo)
	}

	return enriched, nil
}

func (e *Enricher) Reservations(ctx context.Context, reservations []domain.Reservation) ([]EnrichedReservation, error) {
	ids := newLookupIDs()
	for _, r := range reservations {
		ids.hosts.add(r.HostID)
		ids.locations.add(r.LocationID)
		if r.ClientName == "" {
			ids.clients.addPtr(r.ClientID)
		}
	}

	names, err := e.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedReservation, 0, len(reservations))
	for _, r := range reservations {
		symbol := domain.CurrencySymbol(r.Currency, names.hosts[r.HostID].Currency)
		locationID := r.LocationID
		enriched = append(enriched, EnrichedReservation{
			Reservation:       r,
			HostName:          names.hosts[r.HostID].Name,
			LocationName:      lookup(names.locations, &locationID),
			ClientDisplayName: clientDisplayName(r.ClientName, r.ClientID, nil, names),
			Nights:            r.Nights(),
			CurrencySymbol:    symbol,
			TotalDisplay:      domain.FormatAmount(r.PrixTotal, symbol),
			BalanceDisplay:    domain.FormatAmount(domain.BalanceDue(r.PrixTotal, r.MontantPaye), symbol),
		})
	}

	return enriched, nil
}

func (e *Enricher) resolve(ctx context.Context, ids lookupIDs) (nameTables, error) {
	var names nameTables
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if ids.hosts.empty() {
			return nil
		}
		hosts, err := e.deps.Hosts.FindByIDs(ctx, ids.hosts.list())
		if err != nil {
			return fmt.Errorf("e.deps.Hosts.FindByIDs -> %w", err)
		}
		names.hosts = hosts
		return nil
	})

	families := []struct {
		label    string
		ids      idSet
		resolver NameResolver
		out      *map[uint]string
	}{
		{"locations", ids.locations, e.deps.Locations, &names.locations},
		{"services", ids.services, e.deps.Services, &names.services},
		{"menu items", ids.menuItems, e.deps.MenuItems, &names.menuItems},
		{"clients", ids.clients, e.deps.Clients, &names.clients},
		{"users", ids.users, e.deps.Users, &names.users},
	}
	for _, f := range families {
		f := f
		if f.ids.empty() || f.resolver == nil {
			continue
		}
		g.Go(func() error {
			resolved, err := f.resolver.ResolveNames(ctx, f.ids.list())
			if err != nil {
				return fmt.Errorf("resolve %s -> %w", f.label, err)
			}
			*f.out = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nameTables{}, err
	}
	return names, nil
}

// clientDisplayName prefers the name typed on the record, then the client
// record, then the user account.
func clientDisplayName(typed string, clientID, userID *uint, names nameTables) string {
	if typed != "" {
		return typed
	}
	if name := lookup(names.clients, clientID); name != "" {
		return name
	}
	return lookup(names.users, userID)
}

func lookup(names map[uint]string, id *uint) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

type idSet map[uint]struct{}

func newIDSet() idSet { return make(idSet) }

func (s idSet) add(id uint) {
	if id != 0 {
		s[id] = struct{}{}
	}
}

func (s idSet) addPtr(id *uint) {
	if id != nil {
		s.add(*id)
	}
}

func (s idSet) empty() bool { return len(s) == 0 }

// list returns the ids in ascending order.
func (s idSet) list() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
