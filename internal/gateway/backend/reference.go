package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
)

// Reference endpoints.
const (
	transportModelsPath     = "/api/transport-models/"
	packageTypesPath        = "/api/package-types/"
	serviceCategoriesPath   = "/api/service-categories/"
	servicesPath            = "/api/services/"
	deliveryStatusesPath    = "/api/delivery-statuses/"
	technicalConditionsPath = "/api/deliveries/technical_conditions/"
	cargoTypesPath          = "/api/cargo-types/"
	locationsPath           = "/api/locations/"
)

func fetchList[S any, D any](ctx context.Context, c *Client, path string, fn func(S) D) ([]D, error) {
	var raw []S
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return convertList(raw, fn), nil
}

// TransportModels returns the vehicle model list.
func (c *Client) TransportModels(ctx context.Context) ([]domain.TransportModel, error) {
	return fetchList(ctx, c, transportModelsPath, TransportModel.toDomain)
}

// PackageTypes returns the package type list.
func (c *Client) PackageTypes(ctx context.Context) ([]domain.PackageType, error) {
	return fetchList(ctx, c, packageTypesPath, PackageType.toDomain)
}

// ServiceCategories returns the service category list.
func (c *Client) ServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return fetchList(ctx, c, serviceCategoriesPath, ServiceCategory.toDomain)
}

// Services returns the service list.
func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	return fetchList(ctx, c, servicesPath, Service.ToDomain)
}

// DeliveryStatuses returns the delivery status list.
func (c *Client) DeliveryStatuses(ctx context.Context) ([]domain.DeliveryStatus, error) {
	return fetchList(ctx, c, deliveryStatusesPath, DeliveryStatus.toDomain)
}

// TechnicalConditions returns the technical condition list.
func (c *Client) TechnicalConditions(ctx context.Context) ([]domain.TechnicalCondition, error) {
	return fetchList(ctx, c, technicalConditionsPath, TechnicalCondition.toDomain)
}

// CargoTypes returns the cargo type list.
func (c *Client) CargoTypes(ctx context.Context) ([]domain.CargoType, error) {
	return fetchList(ctx, c, cargoTypesPath, CargoType.toDomain)
}

// Locations returns the stored routes.
func (c *Client) Locations(ctx context.Context) ([]domain.Location, error) {
	return fetchList(ctx, c, locationsPath, Location.toDomain)
}

// CreateLocation stores a new route.
func (c *Client) CreateLocation(ctx context.Context, from, to string, distanceKm float64) (domain.Location, error) {
	if from == "" || to == "" {
		return domain.Location{}, fmt.Errorf("%w: both ends of a location are required", apperr.ErrInvalid)
	}
	in := CreateLocationRequest{
		LocationFrom: from,
		LocationTo:   to,
		DistanceKm:   strconv.FormatFloat(distanceKm, 'f', 2, 64),
	}
	var out Location
	if err := c.doJSON(ctx, http.MethodPost, locationsPath, in, &out); err != nil {
		return domain.Location{}, err
	}
	return out.toDomain(), nil
}
