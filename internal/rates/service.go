package rates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rates
type Source interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

type Repository interface {
	SaveSnapshot(ctx context.Context, s Snapshot) error
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
}

// Service caches the last snapshot for ttl. When the source fails it serves
// the stale cache, then the last persisted snapshot.
type Service struct {
	source Source
	repo   Repository // Optional
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time

	group singleflight.Group

	mu     sync.RWMutex
	cached *Snapshot
}

func NewService(source Source, repo Repository, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		repo:   repo,
		ttl:    ttl,
		log:    log.With().Str("component", "rates").Logger(),
		now:    time.Now,
	}
}

func (s *Service) fresh() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil || s.now().Sub(s.cached.FetchedAt) > s.ttl {
		return Snapshot{}, false
	}

	return *s.cached, true
}

func (s *Service) store(snap Snapshot) {
	s.mu.Lock()
	s.cached = &snap
	s.mu.Unlock()
}

// Current returns the freshest snapshot available.
func (s *Service) Current(ctx context.Context) (Snapshot, error) {
	if snap, ok := s.fresh(); ok {
		return snap, nil
	}

	snap, err := s.Refresh(ctx)
	if err == nil {
		return snap, nil
	}

	s.mu.RLock()
	stale := s.cached
	s.mu.RUnlock()

	if stale != nil {
		s.log.Warn().Err(err).Time("fetched_at", stale.FetchedAt).Msg("fetch failed, using stale rates")
		return *stale, nil
	}

	if s.repo != nil {
		persisted, perr := s.repo.LatestSnapshot(ctx)
		if perr == nil && persisted != nil {
			s.log.Warn().Err(err).Time("fetched_at", persisted.FetchedAt).Msg("fetch failed, using persisted rates")
			s.store(*persisted)

			return *persisted, nil
		}
	}

	return Snapshot{}, err
}

// Refresh fetches from the source regardless of the cache and persists the result.
// Concurrent callers share one fetch.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	v, err, _ := s.group.Do("fetch", func() (any, error) {
		snap, err := s.source.Fetch(ctx)
		if err != nil {
			if !errors.Is(err, ErrFetch) {
				err = &FetchError{Err: err}
			}

			return Snapshot{}, err
		}

		s.store(snap)

		if s.repo != nil {
			if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
				s.log.Warn().Err(err).Msg("failed to persist rates")
			}
		}

		return snap, nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return v.(Snapshot), nil
}

// Resolve returns the rate to apply for rate type t. A custom rate is taken as
// given and never touches the network, so it keeps working while the source is down.
func (s *Service) Resolve(ctx context.Context, t money.RateType, custom *decimal.Decimal) (decimal.Decimal, error) {
	if t == money.RateCustom {
		var errs validate.Errors
		if custom == nil {
			errs.Add(validate.FieldRate, validate.MsgRateRequired)
		} else {
			validate.Rate(&errs, validate.FieldRate, money.VES, custom)
		}

		if err := errs.OrNil(); err != nil {
			return decimal.Zero, err
		}

		return *custom, nil
	}

	if !t.Valid() {
		return decimal.Zero, validate.Errors{{Field: validate.FieldRateType, Message: validate.MsgRateTypeInvalid}}
	}

	snap, err := s.Current(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := snap.Rate(t)
	if !ok {
		return decimal.Zero, &FetchError{Err: fmt.Errorf("no %s rate in snapshot", t)}
	}

	return rate, nil
}
