// Package reference exposes the backend reference lists and resolves
// human-readable names to backend ids. Nothing is cached: each call reads
// the current server list.
package reference

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/logx"
)

// Kind names a reference list.
type Kind string

// Reference list kinds.
const (
	KindTransportModels     Kind = "transport-models"
	KindPackageTypes        Kind = "package-types"
	KindServiceCategories   Kind = "service-categories"
	KindServices            Kind = "services"
	KindDeliveryStatuses    Kind = "delivery-statuses"
	KindTechnicalConditions Kind = "technical-conditions"
	KindCargoTypes          Kind = "cargo-types"
	KindLocations           Kind = "locations"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{
		KindTransportModels, KindPackageTypes, KindServiceCategories, KindServices,
		KindDeliveryStatuses, KindTechnicalConditions, KindCargoTypes, KindLocations,
	}
}

// RequiredIDs are the backend ids a delivery write needs.
type RequiredIDs struct {
	TransportModel domain.RefName
	PackageType    domain.RefName
	Status         domain.RefName
}

// ServiceGroup is a category with its services. Category is nil for the
// group of uncategorised services.
type ServiceGroup struct {
	Category *domain.ServiceCategory
	Services []domain.Service
}

// Service reads reference lists.
type Service struct {
	src    source
	logger logx.Logger
}

// NewService returns a Service backed by src.
func NewService(src source, logger logx.Logger) *Service {
	logger = logx.OrNop(logger)
	return &Service{src: src, logger: logger}
}

func (s *Service) TransportModels(ctx context.Context) ([]domain.TransportModel, error) {
	return s.src.TransportModels(ctx)
}

func (s *Service) PackageTypes(ctx context.Context) ([]domain.PackageType, error) {
	return s.src.PackageTypes(ctx)
}

func (s *Service) ServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.src.ServiceCategories(ctx)
}

func (s *Service) Services(ctx context.Context) ([]domain.Service, error) {
	return s.src.Services(ctx)
}

func (s *Service) DeliveryStatuses(ctx context.Context) ([]domain.DeliveryStatus, error) {
	return s.src.DeliveryStatuses(ctx)
}

func (s *Service) TechnicalConditions(ctx context.Context) ([]domain.TechnicalCondition, error) {
	return s.src.TechnicalConditions(ctx)
}

func (s *Service) CargoTypes(ctx context.Context) ([]domain.CargoType, error) {
	return s.src.CargoTypes(ctx)
}

func (s *Service) Locations(ctx context.Context) ([]domain.Location, error) {
	return s.src.Locations(ctx)
}

// List returns the list of the given kind.
func (s *Service) List(ctx context.Context, kind Kind) (any, error) {
	switch kind {
	case KindTransportModels:
		return s.TransportModels(ctx)
	case KindPackageTypes:
		return s.PackageTypes(ctx)
	case KindServiceCategories:
		return s.ServiceCategories(ctx)
	case KindServices:
		return s.Services(ctx)
	case KindDeliveryStatuses:
		return s.DeliveryStatuses(ctx)
	case KindTechnicalConditions:
		return s.TechnicalConditions(ctx)
	case KindCargoTypes:
		return s.CargoTypes(ctx)
	case KindLocations:
		return s.Locations(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown reference kind %q", apperr.ErrNotFound, kind)
	}
}

// Resolve matches the three names against their server lists, fetched
// concurrently. Any missing match yields apperr.ErrRequiredIDsNotFound.
func (s *Service) Resolve(ctx context.Context, vehicleModel, packageType, status string) (RequiredIDs, error) {
	var (
		models   []domain.TransportModel
		packages []domain.PackageType
		statuses []domain.DeliveryStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		models, err = s.src.TransportModels(gctx)
		return err
	})
	g.Go(func() (err error) {
		packages, err = s.src.PackageTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = s.src.DeliveryStatuses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return RequiredIDs{}, fmt.Errorf("fetch reference lists: %w", err)
	}

	var ids RequiredIDs
	var missing []string
	var ok bool
	if ids.TransportModel, ok = domain.MatchName(models, vehicleModel); !ok {
		missing = append(missing, "transport model "+quote(vehicleModel))
	}
	if ids.PackageType, ok = domain.MatchName(packages, packageType); !ok {
		missing = append(missing, "package type "+quote(packageType))
	}
	if ids.Status, ok = domain.MatchName(statuses, status); !ok {
		missing = append(missing, "status "+quote(status))
	}
	if len(missing) > 0 {
		s.logger.Warn("reference names not matched", logx.String("missing", strings.Join(missing, ", ")))
		return RequiredIDs{}, fmt.Errorf("%w: %s", apperr.ErrRequiredIDsNotFound, strings.Join(missing, ", "))
	}
	return ids, nil
}

// ResolveServices maps service names to ids. Unknown names are an error.
func (s *Service) ResolveServices(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	list, err := s.src.Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch services: %w", err)
	}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		ref, ok := domain.MatchName(list, name)
		if !ok {
			return nil, fmt.Errorf("%w: service %s", apperr.ErrRequiredIDsNotFound, quote(name))
		}
		ids = append(ids, ref.ID())
	}
	return ids, nil
}

// ServicesByCategory groups services under their categories, in category
// order, followed by the uncategorised services.
func (s *Service) ServicesByCategory(ctx context.Context) ([]ServiceGroup, error) {
	var (
		categories []domain.ServiceCategory
		services   []domain.Service
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = s.src.ServiceCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		services, err = s.src.Services(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch services: %w", err)
	}
	return GroupServices(categories, services), nil
}

// GroupServices is the pure part of ServicesByCategory. Services whose
// category is not in categories are appended as extra groups ordered by id.
func GroupServices(categories []domain.ServiceCategory, services []domain.Service) []ServiceGroup {
	index := make(map[int64]int, len(categories))
	groups := make([]ServiceGroup, 0, len(categories)+1)
	for _, c := range categories {
		c := c
		index[c.ID] = len(groups)
		groups = append(groups, ServiceGroup{Category: &c})
	}

	var extra []ServiceGroup
	extraIndex := map[int64]int{}
	var loose []domain.Service
	for _, svc := range services {
		if svc.Category == nil {
			loose = append(loose, svc)
			continue
		}
		if i, ok := index[svc.Category.ID]; ok {
			groups[i].Services = append(groups[i].Services, svc)
			continue
		}
		i, ok := extraIndex[svc.Category.ID]
		if !ok {
			cat := *svc.Category
			i = len(extra)
			extraIndex[cat.ID] = i
			extra = append(extra, ServiceGroup{Category: &cat})
		}
		extra[i].Services = append(extra[i].Services, svc)
	}
	sort.Slice(extra, func(a, b int) bool { return extra[a].Category.ID < extra[b].Category.ID })
	groups = append(groups, extra...)
	if len(loose) > 0 {
		groups = append(groups, ServiceGroup{Services: loose})
	}
	return groups
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
