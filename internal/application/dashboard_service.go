package application

import (
	"context"
	"fmt"
	"os"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/domain/transit"
)

// DashboardService serves dashboard views over a memoized routes file.
type DashboardService struct {
	source transit.RouteSource
	path   string
	cache  *cache.Cache
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService reading routes from path.
func NewDashboardService(source transit.RouteSource, path string, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		source: source,
		path:   path,
		cache:  cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

// Path returns the routes file served by this dashboard.
func (s *DashboardService) Path() string {
	return s.path
}

// Load returns the routes of the configured file. The result is cached by
// path and modification time until ClearCache is called.
func (s *DashboardService) Load(ctx context.Context) ([]transit.TransitRoute, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat routes file: %w", err)
	}

	key := cacheKey("routes", s.path, info.ModTime().UnixNano(), info.Size())
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]transit.TransitRoute), nil
	}

	routes, err := s.source.Read(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	// a new key means the file changed, so older entries are stale
	s.cache.Flush()
	s.cache.Set(key, routes, cache.NoExpiration)

	s.logger.Debug("routes cache filled", zap.String("key", key))
	return routes, nil
}

// Render loads the routes and builds the view for the given selection.
func (s *DashboardService) Render(ctx context.Context, state transit.FilterState) (transit.DashboardView, error) {
	routes, err := s.Load(ctx)
	if err != nil {
		return transit.DashboardView{}, err
	}
	return transit.BuildView(routes, state), nil
}

// Options returns the selectable transport types and regions.
func (s *DashboardService) Options(ctx context.Context) (transit.FilterOptions, error) {
	routes, err := s.Load(ctx)
	if err != nil {
		return transit.FilterOptions{}, err
	}
	return transit.Options(routes), nil
}

// ClearCache drops the memoized routes.
func (s *DashboardService) ClearCache() {
	s.cache.Flush()
	s.logger.Info("routes cache cleared")
}

func cacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, p := range params {
		key += ":" + fmt.Sprintf("%v", p)
	}
	return key
}
