package logistics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/utils"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	// DefaultLocalRadiusKm is the assumed trip length when pickup and delivery share coordinates.
	DefaultLocalRadiusKm = 1.5
	// CalibrationFactor corrects the routing service's systematic underestimation.
	CalibrationFactor = 1.15
)

type Coordinates struct {
	Lat  *float64
	Long *float64
}

func CoordinatesOf(r *models.Region) Coordinates {
	if r == nil {
		return Coordinates{}
	}
	return Coordinates{Lat: r.Lat, Long: r.Long}
}

func (c Coordinates) complete() bool {
	return c.Lat != nil && c.Long != nil
}

func (c Coordinates) equal(o Coordinates) bool {
	return *c.Lat == *o.Lat && *c.Long == *o.Long
}

func (c Coordinates) String() string {
	return formatCoord(*c.Long) + "," + formatCoord(*c.Lat)
}

type DistanceResolver interface {
	ResolveDistanceKm(ctx context.Context, origin, destination Coordinates) (float64, error)
}

// OSRMResolver asks an OSRM-compatible routing service for the road distance between two points.
type OSRMResolver struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	cache   DistanceCache
	logger  *zap.Logger
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// NewOSRMResolver builds a resolver for baseURL (e.g. https://router.project-osrm.org/route/v1/driving).
// cache may be nil.
func NewOSRMResolver(baseURL string, timeout time.Duration, cache DistanceCache, logger *zap.Logger) *OSRMResolver {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "distance-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &OSRMResolver{
		client:  client,
		breaker: breaker,
		cache:   cache,
		logger:  logger,
	}
}

func (r *OSRMResolver) ResolveDistanceKm(ctx context.Context, origin, destination Coordinates) (float64, error) {
	if !origin.complete() || !destination.complete() {
		return 0, utils.NewValidationError("pickup and delivery coordinates are required")
	}

	if origin.equal(destination) {
		return DefaultLocalRadiusKm * CalibrationFactor, nil
	}

	key := cacheKey(origin, destination)
	if r.cache != nil {
		if km, ok := r.cache.Get(ctx, key); ok {
			return km, nil
		}
	}

	meters, err := utils.ExecuteWithBreaker(r.breaker, func() (float64, error) {
		return r.fetchMeters(ctx, origin, destination)
	})
	if err != nil {
		r.logger.Warn("Distance lookup failed",
			zap.String("origin", origin.String()),
			zap.String("destination", destination.String()),
			zap.Error(err),
		)
		return 0, utils.NewServiceError("distance service unavailable", err)
	}

	km := meters / 1000 * CalibrationFactor
	if r.cache != nil {
		r.cache.Set(ctx, key, km)
	}
	return km, nil
}

func (r *OSRMResolver) fetchMeters(ctx context.Context, origin, destination Coordinates) (float64, error) {
	var result routeResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("overview", "false").
		SetResult(&result).
		Get("/" + origin.String() + ";" + destination.String())
	if err != nil {
		return 0, fmt.Errorf("request route: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("route request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	if len(result.Routes) == 0 {
		return 0, fmt.Errorf("no route found (code %q)", result.Code)
	}

	return result.Routes[0].Distance, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
