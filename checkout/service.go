package checkout

import (
	"time"

	"github.com/Kariqs/agroxhub-api/logistics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	outcomeAssigned      = "assigned"
	outcomeUnassigned    = "unassigned"
	outcomeDistanceError = "distance_error"
)

var assignmentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "agroxhub",
	Name:      "logistics_assignments_total",
	Help:      "Logistics provider assignments at checkout by outcome.",
}, []string{"outcome"})

// Service owns order creation, item mutation and the buyer-side order queries.
type Service struct {
	db       *gorm.DB
	matcher  *logistics.Matcher
	distance logistics.DistanceResolver
	policy   logistics.SelectionPolicy
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(db *gorm.DB, distance logistics.DistanceResolver, policy logistics.SelectionPolicy, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		matcher:  logistics.NewMatcher(logistics.NewGormDirectory(db)),
		distance: distance,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}
