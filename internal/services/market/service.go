// Package market provides the shared quote cache and the market snapshot
// report.
package market

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

// DefaultTTL is how long one batch snapshot stays valid.
const DefaultTTL = common.FreshnessQuotes

// breadthDeadZone is the ±% band inside which a constituent counts as
// unchanged.
const breadthDeadZone = 0.1

// Service implements MarketService: one process-wide quote cache over the
// configured symbol universe.
type Service struct {
	client   interfaces.MarketDataClient
	universe common.MarketConfig
	ttl      time.Duration
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing

	mu   sync.RWMutex
	snap *models.QuoteSnapshot

	group singleflight.Group
}

// NewService creates a new market service.
func NewService(client interfaces.MarketDataClient, universe common.MarketConfig, logger *common.Logger) *Service {
	return &Service{
		client:   client,
		universe: universe,
		ttl:      universe.GetCacheTTL(),
		logger:   logger,
		now:      time.Now,
	}
}

// Quotes returns the cached snapshot, refreshing it first when older than
// the TTL. Concurrent refreshes collapse into a single upstream call; a
// failed refresh returns the error and leaves the cache untouched.
func (s *Service) Quotes(ctx context.Context) (*models.QuoteSnapshot, error) {
	if snap := s.fresh(); snap != nil {
		return snap, nil
	}

	v, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		// Another caller may have refreshed while we queued.
		if snap := s.fresh(); snap != nil {
			return snap, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.QuoteSnapshot), nil
}

// fresh returns the cached snapshot if it is younger than the TTL.
func (s *Service) fresh() *models.QuoteSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap != nil && common.IsFresh(s.now(), s.snap.FetchedAt, s.ttl) {
		return s.snap
	}
	return nil
}

func (s *Service) refresh(ctx context.Context) (*models.QuoteSnapshot, error) {
	symbols := s.universe.AllSymbols()

	quotes, err := s.client.GetQuotes(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Quote refresh failed; keeping cached snapshot")
		return nil, err
	}

	snap := &models.QuoteSnapshot{
		Quotes:    quotes,
		FetchedAt: s.now(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Info().Int("symbols", len(quotes)).Msg("Quote snapshot refreshed")
	return snap, nil
}

// TopMovers ranks the configured constituents by percentage change: the
// three lowest are losers (ascending), the three highest are gainers
// (descending). Breadth counts use the ±0.1% dead zone.
func TopMovers(snap *models.QuoteSnapshot, constituents []string) models.Movers {
	var ranked []models.Mover
	var breadth models.Breadth

	for _, symbol := range constituents {
		q, ok := snap.Get(symbol)
		if !ok {
			continue
		}

		ranked = append(ranked, models.Mover{
			Name:      strings.TrimSuffix(symbol, ".NS"),
			Symbol:    symbol,
			Price:     q.Price,
			ChangePct: q.ChangePct,
		})

		switch {
		case q.ChangePct > breadthDeadZone:
			breadth.Advances++
		case q.ChangePct < -breadthDeadZone:
			breadth.Declines++
		default:
			breadth.Unchanged++
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChangePct < ranked[j].ChangePct
	})

	movers := models.Movers{Breadth: breadth}

	n := len(ranked)
	for i := 0; i < 3 && i < n; i++ {
		movers.Losers = append(movers.Losers, ranked[i])
	}
	for i := n - 1; i >= n-3 && i >= 0; i-- {
		movers.Gainers = append(movers.Gainers, ranked[i])
	}

	return movers
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
