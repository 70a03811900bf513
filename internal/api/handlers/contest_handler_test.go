package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/cache"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"

	"github.com/gorilla/mux"
)

type fakeContestRepo struct {
	contests []*models.Contest
	filters  *repository.ContestFilters
}

func (f *fakeContestRepo) Create(contest *models.Contest) error { return nil }

func (f *fakeContestRepo) GetByID(id uint) (*models.Contest, error) {
	for _, c := range f.contests {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeContestRepo) GetAll() ([]*models.Contest, error) { return f.contests, nil }

func (f *fakeContestRepo) GetUpcoming() ([]*models.Contest, error) {
	var out []*models.Contest
	for _, c := range f.contests {
		if c.IsUpcoming() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContestRepo) GetPast(limit, offset int) ([]*models.Contest, error) {
	return nil, nil
}

func (f *fakeContestRepo) ListByFilters(filters repository.ContestFilters) ([]*models.Contest, error) {
	f.filters = &filters
	return f.contests, nil
}

func (f *fakeContestRepo) Count() (int64, error) { return int64(len(f.contests)), nil }

type fakeContestPrefsRepo struct {
	prefs *models.ContestPreference
}

func (f *fakeContestPrefsRepo) Create(prefs *models.ContestPreference) error { return nil }
func (f *fakeContestPrefsRepo) GetByUserID(userID uint) (*models.ContestPreference, error) {
	return f.prefs, nil
}
func (f *fakeContestPrefsRepo) Update(prefs *models.ContestPreference) error { return nil }

func upcomingContest(id uint, name string) *models.Contest {
	start := time.Now().Add(24 * time.Hour)
	c := &models.Contest{
		Platform:  models.PlatformCodeforces,
		Name:      name,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	}
	c.ID = id
	return c
}

func newContestTestHandler(repo *fakeContestRepo) *ContestHandler {
	// Nil redis client: cache calls are no-ops and reads hit the repo.
	return NewContestHandler(repo, &fakeContestPrefsRepo{}, cache.New(nil, time.Minute))
}

func TestListContestsRejectsUnknownPlatform(t *testing.T) {
	h := newContestTestHandler(&fakeContestRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contests?platform=atcoder", nil)
	rec := httptest.NewRecorder()

	h.ListContests(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListContestsPassesFilters(t *testing.T) {
	repo := &fakeContestRepo{contests: []*models.Contest{upcomingContest(1, "Round A")}}
	h := newContestTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contests?platform=codeforces&type=div2&page=2&limit=10", nil)
	rec := httptest.NewRecorder()

	h.ListContests(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if repo.filters == nil {
		t.Fatal("repository was not queried")
	}

	if repo.filters.Platform != "codeforces" || repo.filters.ContestType != "div2" {
		t.Errorf("filters = %+v", repo.filters)
	}

	if repo.filters.Limit != 10 || repo.filters.Offset != 10 {
		t.Errorf("pagination limit=%d offset=%d, want 10 and 10", repo.filters.Limit, repo.filters.Offset)
	}
}

func TestUpcomingContestsServesRepoWithoutRedis(t *testing.T) {
	repo := &fakeContestRepo{contests: []*models.Contest{
		upcomingContest(1, "Round A"),
		upcomingContest(2, "Round B"),
	}}
	h := newContestTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contests/upcoming", nil)
	rec := httptest.NewRecorder()

	h.UpcomingContests(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Contests []*models.Contest `json:"contests"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(body.Contests) != 2 {
		t.Errorf("got %d contests, want 2", len(body.Contests))
	}
}

func TestGetContestNotFound(t *testing.T) {
	h := newContestTestHandler(&fakeContestRepo{})

	router := mux.NewRouter()
	router.HandleFunc("/contests/{id:[0-9]+}", h.GetContest).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/contests/7", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetContestFound(t *testing.T) {
	repo := &fakeContestRepo{contests: []*models.Contest{upcomingContest(7, "Round A")}}
	h := newContestTestHandler(repo)

	router := mux.NewRouter()
	router.HandleFunc("/contests/{id:[0-9]+}", h.GetContest).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/contests/7", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var contest models.Contest
	if err := json.NewDecoder(rec.Body).Decode(&contest); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if contest.Name != "Round A" {
		t.Errorf("contest name = %q, want %q", contest.Name, "Round A")
	}
}
