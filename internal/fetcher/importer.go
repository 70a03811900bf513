package fetcher

import (
	"context"
	"fmt"
	"log"

	"github.com/DivyanshSaharan/ContestTrack/internal/repository"
)

// Importer merges aggregator output into the contest store. The dedup key is
// exact string equality on (platform, name, RFC3339 start time); a contest
// whose key is already stored is skipped untouched, so re-fetching the same
// calendar next hour never grows the table and never overwrites earlier rows.
type Importer struct {
	aggregator  *Aggregator
	contestRepo repository.ContestRepository
}

func NewImporter(aggregator *Aggregator, contestRepo repository.ContestRepository) *Importer {
	return &Importer{
		aggregator:  aggregator,
		contestRepo: contestRepo,
	}
}

// Run fetches all sources and inserts contests not yet stored. It returns
// the number of newly inserted contests and the total fetched.
func (i *Importer) Run(ctx context.Context) (inserted, fetched int, err error) {
	contests := i.aggregator.FetchAll(ctx)
	fetched = len(contests)

	existing, err := i.contestRepo.GetAll()
	if err != nil {
		return 0, fetched, fmt.Errorf("failed to load stored contests: %w", err)
	}

	seen := make(map[string]bool, len(existing)+len(contests))
	for _, c := range existing {
		seen[c.DedupKey()] = true
	}

	for _, contest := range contests {
		key := contest.DedupKey()
		if seen[key] {
			continue
		}

		if err := i.contestRepo.Create(contest); err != nil {
			// Another run may have inserted the same contest between our
			// snapshot and this insert; the unique index reports that as a
			// duplicate, which is a skip, not a failure.
			if repository.IsDuplicateKeyError(err) {
				seen[key] = true
				continue
			}
			log.Printf("Failed to store contest %q: %v", contest.Name, err)
			continue
		}

		seen[key] = true
		inserted++
	}

	log.Printf("Contest import completed: %d new, %d fetched", inserted, fetched)
	return inserted, fetched, nil
}
