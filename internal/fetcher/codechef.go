package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/config"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/ratelimit"
)

// CodechefFetcher tries an ordered chain of sources: the official contest
// list API first, then a public mirror. The first source returning valid,
// non-empty data wins; if all are exhausted the fetch fails.
type CodechefFetcher struct {
	httpClient *http.Client
	limiter    *ratelimit.RateLimiter
	cfg        config.SourcesConfig
}

type codechefSource struct {
	name  string
	fetch func(ctx context.Context, window timeWindow) ([]*models.Contest, error)
}

type codechefContest struct {
	ContestCode  string `json:"contest_code"`
	ContestName  string `json:"contest_name"`
	StartDateISO string `json:"contest_start_date_iso"`
	EndDateISO   string `json:"contest_end_date_iso"`
}

type codechefListResponse struct {
	Status          string            `json:"status"`
	FutureContests  []codechefContest `json:"future_contests"`
	PresentContests []codechefContest `json:"present_contests"`
	PastContests    []codechefContest `json:"past_contests"`
}

type kontestsContest struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewCodechefFetcher(cfg config.SourcesConfig, limiter *ratelimit.RateLimiter) *CodechefFetcher {
	return &CodechefFetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
		cfg:        cfg,
	}
}

func (f *CodechefFetcher) Platform() string {
	return models.PlatformCodechef
}

func (f *CodechefFetcher) Fetch(ctx context.Context) ([]*models.Contest, error) {
	window := newTimeWindow(f.cfg.LookbackDays, f.cfg.HorizonDays)

	sources := []codechefSource{
		{name: "codechef.com", fetch: f.fetchOfficial},
		{name: "kontests mirror", fetch: f.fetchMirror},
	}

	var lastErr error
	for _, source := range sources {
		contests, err := source.fetch(ctx, window)
		if err != nil {
			log.Printf("codechef: source %s failed: %v", source.name, err)
			lastErr = err
			continue
		}

		if len(contests) == 0 {
			log.Printf("codechef: source %s returned no contests, trying next", source.name)
			continue
		}

		return contests, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("codechef: all sources failed: %w", lastErr)
	}

	return nil, nil
}

func (f *CodechefFetcher) fetchOfficial(ctx context.Context, window timeWindow) ([]*models.Contest, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var apiResp codechefListResponse
	if err := getJSON(ctx, f.httpClient, f.cfg.CodechefURL, nil, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "success" {
		return nil, fmt.Errorf("unexpected status %q", apiResp.Status)
	}

	var contests []*models.Contest
	groups := [][]codechefContest{apiResp.PresentContests, apiResp.FutureContests, apiResp.PastContests}

	for _, group := range groups {
		for _, entry := range group {
			start, err := time.Parse(time.RFC3339, entry.StartDateISO)
			if err != nil {
				continue
			}

			end, err := time.Parse(time.RFC3339, entry.EndDateISO)
			if err != nil {
				continue
			}

			if !window.contains(start, end) {
				continue
			}

			contest := newContest(
				models.PlatformCodechef,
				entry.ContestName,
				fmt.Sprintf("https://www.codechef.com/%s", entry.ContestCode),
				start,
				end,
			)
			if contest != nil {
				contests = append(contests, contest)
			}
		}
	}

	return contests, nil
}

func (f *CodechefFetcher) fetchMirror(ctx context.Context, window timeWindow) ([]*models.Contest, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var entries []kontestsContest
	if err := getJSON(ctx, f.httpClient, f.cfg.CodechefMirror, nil, &entries); err != nil {
		return nil, err
	}

	var contests []*models.Contest
	for _, entry := range entries {
		start, err := time.Parse(time.RFC3339, entry.StartTime)
		if err != nil {
			continue
		}

		end, err := time.Parse(time.RFC3339, entry.EndTime)
		if err != nil {
			continue
		}

		if !window.contains(start, end) {
			continue
		}

		contest := newContest(models.PlatformCodechef, entry.Name, entry.URL, start, end)
		if contest != nil {
			contests = append(contests, contest)
		}
	}

	return contests, nil
}
