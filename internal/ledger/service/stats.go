package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/recouvro/recouvro/internal/ledger/store"
)

// Stats is the dashboard aggregate. All amounts are centimes; the
// invariant TotalDu == Avenir + Retard holds because the three numbers
// are computed against the same reference date.
type Stats struct {
	MontantAvenir int64
	MontantRetard int64
	Payes         int64
	EnRetard      int64
	TotalClients  int64
	TotalDu       int64
}

// StatsService computes the dashboard aggregation.
type StatsService struct {
	Store store.Store

	Now func() time.Time
}

func (s *StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Snapshot runs the three aggregate queries concurrently and collects
// them into one Stats value.
func (s *StatsService) Snapshot(ctx context.Context) (Stats, error) {
	today := s.now()

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		avenir, retard, err := s.Store.Clients().SumMontantsByStatut(gctx, today)
		if err != nil {
			return err
		}
		stats.MontantAvenir = avenir
		stats.MontantRetard = retard
		return nil
	})

	g.Go(func() error {
		payes, enRetard, total, err := s.Store.Clients().Repartition(gctx, today)
		if err != nil {
			return err
		}
		stats.Payes = payes
		stats.EnRetard = enRetard
		stats.TotalClients = total
		return nil
	})

	g.Go(func() error {
		totalDu, err := s.Store.Clients().TotalDu(gctx)
		if err != nil {
			return err
		}
		stats.TotalDu = totalDu
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
