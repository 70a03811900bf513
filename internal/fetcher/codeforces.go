package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/config"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/ratelimit"
)

type CodeforcesFetcher struct {
	httpClient *http.Client
	limiter    *ratelimit.RateLimiter
	cfg        config.SourcesConfig
}

type codeforcesResponse struct {
	Status string `json:"status"`
	Result []struct {
		ID               int    `json:"id"`
		Name             string `json:"name"`
		Phase            string `json:"phase"`
		StartTimeSeconds int64  `json:"startTimeSeconds"`
		DurationSeconds  int64  `json:"durationSeconds"`
	} `json:"result"`
}

func NewCodeforcesFetcher(cfg config.SourcesConfig, limiter *ratelimit.RateLimiter) *CodeforcesFetcher {
	return &CodeforcesFetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
		cfg:        cfg,
	}
}

func (f *CodeforcesFetcher) Platform() string {
	return models.PlatformCodeforces
}

func (f *CodeforcesFetcher) Fetch(ctx context.Context) ([]*models.Contest, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var apiResp codeforcesResponse
	if err := getJSON(ctx, f.httpClient, f.cfg.CodeforcesURL, nil, &apiResp); err != nil {
		return nil, fmt.Errorf("codeforces: %w", err)
	}

	if apiResp.Status != "OK" {
		return nil, fmt.Errorf("codeforces: unexpected status %q", apiResp.Status)
	}

	window := newTimeWindow(f.cfg.LookbackDays, f.cfg.HorizonDays)
	var contests []*models.Contest

	for _, entry := range apiResp.Result {
		if entry.StartTimeSeconds == 0 || entry.DurationSeconds == 0 {
			continue
		}

		start := time.Unix(entry.StartTimeSeconds, 0).UTC()
		end := start.Add(time.Duration(entry.DurationSeconds) * time.Second)

		if !window.contains(start, end) {
			continue
		}

		contest := newContest(
			models.PlatformCodeforces,
			entry.Name,
			fmt.Sprintf("https://codeforces.com/contest/%d", entry.ID),
			start,
			end,
		)
		if contest != nil {
			contests = append(contests, contest)
		}
	}

	return contests, nil
}
