package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"
)

// Mock repository and fetchers for testing

type mockContestRepo struct {
	contests []*models.Contest
	nextID   uint
}

func newMockContestRepo() *mockContestRepo {
	return &mockContestRepo{nextID: 1}
}

func (m *mockContestRepo) Create(contest *models.Contest) error {
	contest.ID = m.nextID
	m.nextID++
	m.contests = append(m.contests, contest)
	return nil
}

func (m *mockContestRepo) GetByID(id uint) (*models.Contest, error) {
	for _, c := range m.contests {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockContestRepo) GetAll() ([]*models.Contest, error) {
	return m.contests, nil
}

func (m *mockContestRepo) GetUpcoming() ([]*models.Contest, error) {
	var upcoming []*models.Contest
	for _, c := range m.contests {
		if c.IsUpcoming() {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

func (m *mockContestRepo) GetPast(limit, offset int) ([]*models.Contest, error) {
	var past []*models.Contest
	for _, c := range m.contests {
		if c.IsFinished() {
			past = append(past, c)
		}
	}
	return past, nil
}

func (m *mockContestRepo) ListByFilters(filters repository.ContestFilters) ([]*models.Contest, error) {
	return m.contests, nil
}

func (m *mockContestRepo) Count() (int64, error) {
	return int64(len(m.contests)), nil
}

type stubFetcher struct {
	platform string
	contests []*models.Contest
	err      error
}

func (s *stubFetcher) Platform() string {
	return s.platform
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]*models.Contest, error) {
	return s.contests, s.err
}

func TestImporterInsertsNewContests(t *testing.T) {
	start := time.Now().Add(48 * time.Hour).UTC()

	agg := NewAggregator()
	agg.Register(&stubFetcher{
		platform: models.PlatformCodeforces,
		contests: []*models.Contest{
			newContest(models.PlatformCodeforces, "Round A", "", start, start.Add(2*time.Hour)),
		},
	})
	agg.Register(&stubFetcher{
		platform: models.PlatformLeetcode,
		contests: []*models.Contest{
			newContest(models.PlatformLeetcode, "Weekly 1", "", start.Add(24*time.Hour), start.Add(24*time.Hour+90*time.Minute)),
		},
	})

	repo := newMockContestRepo()
	importer := NewImporter(agg, repo)

	inserted, fetched, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if fetched != 2 || inserted != 2 {
		t.Errorf("inserted=%d fetched=%d, want 2 and 2", inserted, fetched)
	}

	durations := map[string]string{}
	for _, c := range repo.contests {
		durations[c.Name] = c.Duration
	}

	if durations["Round A"] != "2h" {
		t.Errorf("Round A duration = %q, want %q", durations["Round A"], "2h")
	}
	if durations["Weekly 1"] != "1h 30m" {
		t.Errorf("Weekly 1 duration = %q, want %q", durations["Weekly 1"], "1h 30m")
	}
}

func TestImporterIsIdempotent(t *testing.T) {
	start := time.Now().Add(48 * time.Hour).UTC()

	agg := NewAggregator()
	agg.Register(&stubFetcher{
		platform: models.PlatformCodeforces,
		contests: []*models.Contest{
			newContest(models.PlatformCodeforces, "Round A", "", start, start.Add(2*time.Hour)),
			newContest(models.PlatformCodeforces, "Round B", "", start.Add(time.Hour), start.Add(3*time.Hour)),
		},
	})

	repo := newMockContestRepo()
	importer := NewImporter(agg, repo)

	if _, _, err := importer.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	countAfterFirst := len(repo.contests)

	inserted, fetched, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if inserted != 0 {
		t.Errorf("second run inserted %d contests, want 0", inserted)
	}

	if fetched != 2 {
		t.Errorf("second run fetched %d contests, want 2", fetched)
	}

	if len(repo.contests) != countAfterFirst {
		t.Errorf("store grew from %d to %d rows on rerun", countAfterFirst, len(repo.contests))
	}
}

func TestImporterSkipsDuplicatesWithinOneRun(t *testing.T) {
	start := time.Now().Add(48 * time.Hour).UTC()
	contest := func() *models.Contest {
		return newContest(models.PlatformCodeforces, "Round A", "", start, start.Add(2*time.Hour))
	}

	// Two sources reporting the same contest in a single fetch.
	agg := NewAggregator()
	agg.Register(&stubFetcher{platform: models.PlatformCodeforces, contests: []*models.Contest{contest()}})
	agg.Register(&stubFetcher{platform: models.PlatformCodeforces, contests: []*models.Contest{contest()}})

	repo := newMockContestRepo()
	importer := NewImporter(agg, repo)

	inserted, fetched, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if fetched != 2 {
		t.Errorf("fetched = %d, want 2", fetched)
	}

	if inserted != 1 {
		t.Errorf("inserted = %d, want 1", inserted)
	}
}

func TestImporterDoesNotUpdateExistingRows(t *testing.T) {
	start := time.Now().Add(48 * time.Hour).UTC()

	repo := newMockContestRepo()
	first := newContest(models.PlatformCodeforces, "Round A", "https://original.example", start, start.Add(2*time.Hour))
	first.Difficulty = "1600-1899"
	if err := repo.Create(first); err != nil {
		t.Fatal(err)
	}

	refetched := newContest(models.PlatformCodeforces, "Round A", "https://changed.example", start, start.Add(2*time.Hour))
	refetched.Difficulty = "rewritten"

	agg := NewAggregator()
	agg.Register(&stubFetcher{platform: models.PlatformCodeforces, contests: []*models.Contest{refetched}})

	importer := NewImporter(agg, repo)
	if _, _, err := importer.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(repo.contests) != 1 {
		t.Fatalf("store has %d rows, want 1", len(repo.contests))
	}

	if repo.contests[0].URL != "https://original.example" {
		t.Errorf("existing row was overwritten: URL = %q", repo.contests[0].URL)
	}
}

func TestAggregatorToleratesFailingSource(t *testing.T) {
	start := time.Now().Add(48 * time.Hour).UTC()

	agg := NewAggregator()
	agg.Register(&stubFetcher{
		platform: models.PlatformCodeforces,
		contests: []*models.Contest{
			newContest(models.PlatformCodeforces, "Round A", "", start, start.Add(2*time.Hour)),
		},
	})
	agg.Register(&stubFetcher{
		platform: models.PlatformCodechef,
		err:      errors.New("connection refused"),
	})
	agg.Register(&stubFetcher{
		platform: models.PlatformLeetcode,
		contests: []*models.Contest{
			newContest(models.PlatformLeetcode, "Weekly 1", "", start, start.Add(90*time.Minute)),
		},
	})

	contests := agg.FetchAll(context.Background())

	if len(contests) != 2 {
		t.Fatalf("got %d contests, want 2 from the healthy sources", len(contests))
	}

	for _, c := range contests {
		if c.Platform == models.PlatformCodechef {
			t.Error("failed source contributed records")
		}
	}
}
