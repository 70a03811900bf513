package fetcher

import (
	"context"
	"log"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
)

// Aggregator runs every registered fetcher concurrently and concatenates
// their output. A failed source contributes zero records and is logged; it
// never aborts the run. There is no ordering guarantee across platforms.
type Aggregator struct {
	fetchers     []Fetcher
	fetchTimeout time.Duration
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		fetchTimeout: 30 * time.Second,
	}
}

func (a *Aggregator) Register(f Fetcher) {
	a.fetchers = append(a.fetchers, f)
	log.Printf("Registered fetcher: %s", f.Platform())
}

func (a *Aggregator) FetchAll(ctx context.Context) []*models.Contest {
	type result struct {
		platform string
		contests []*models.Contest
	}

	ch := make(chan result, len(a.fetchers))

	for _, f := range a.fetchers {
		f := f
		go func() {
			fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
			defer cancel()

			contests, err := f.Fetch(fetchCtx)
			if err != nil {
				log.Printf("Fetcher %s failed: %v", f.Platform(), err)
				contests = nil
			}
			ch <- result{platform: f.Platform(), contests: contests}
		}()
	}

	var all []*models.Contest
	for range a.fetchers {
		r := <-ch
		log.Printf("Fetched %d contests from %s", len(r.contests), r.platform)
		all = append(all, r.contests...)
	}

	return all
}
