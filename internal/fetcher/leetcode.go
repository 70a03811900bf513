package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/config"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/ratelimit"
)

const leetcodeContestQuery = `{ allContests { title titleSlug startTime duration } }`

// LeetcodeFetcher queries the GraphQL contest endpoint. Unlike the other two
// sources this one requires an API key.
type LeetcodeFetcher struct {
	httpClient *http.Client
	limiter    *ratelimit.RateLimiter
	cfg        config.SourcesConfig
}

type leetcodeResponse struct {
	Data struct {
		AllContests []struct {
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
			StartTime int64  `json:"startTime"`
			Duration  int64  `json:"duration"`
		} `json:"allContests"`
	} `json:"data"`
}

func NewLeetcodeFetcher(cfg config.SourcesConfig, limiter *ratelimit.RateLimiter) *LeetcodeFetcher {
	return &LeetcodeFetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
		cfg:        cfg,
	}
}

func (f *LeetcodeFetcher) Platform() string {
	return models.PlatformLeetcode
}

func (f *LeetcodeFetcher) Fetch(ctx context.Context) ([]*models.Contest, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"query": leetcodeContestQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.LeetcodeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("leetcode: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if f.cfg.LeetcodeAPIKey != "" {
		req.Header.Set("X-Api-Key", f.cfg.LeetcodeAPIKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leetcode: bad status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp leetcodeResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("leetcode: failed to parse JSON: %w", err)
	}

	window := newTimeWindow(f.cfg.LookbackDays, f.cfg.HorizonDays)
	var contests []*models.Contest

	for _, entry := range apiResp.Data.AllContests {
		if entry.StartTime == 0 || entry.Duration == 0 {
			continue
		}

		start := time.Unix(entry.StartTime, 0).UTC()
		end := start.Add(time.Duration(entry.Duration) * time.Second)

		if !window.contains(start, end) {
			continue
		}

		contest := newContest(
			models.PlatformLeetcode,
			entry.Title,
			fmt.Sprintf("https://leetcode.com/contest/%s", entry.TitleSlug),
			start,
			end,
		)
		if contest != nil {
			contests = append(contests, contest)
		}
	}

	return contests, nil
}
