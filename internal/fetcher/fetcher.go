package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
)

// Fetcher pulls the contest calendar from one external platform and
// normalizes it into Contest records. Transport and parse failures surface as
// errors; the aggregator isolates them so one broken source never aborts a
// run. Fetchers must not fabricate contest data on any path.
type Fetcher interface {
	Platform() string
	Fetch(ctx context.Context) ([]*models.Contest, error)
}

// timeWindow bounds fetch results: contests that ended long ago or start past
// the horizon are dropped at the fetcher boundary.
type timeWindow struct {
	oldestEnd   time.Time
	latestStart time.Time
}

func newTimeWindow(lookbackDays, horizonDays int) timeWindow {
	now := time.Now().UTC()
	return timeWindow{
		oldestEnd:   now.AddDate(0, 0, -lookbackDays),
		latestStart: now.AddDate(0, 0, horizonDays),
	}
}

func (w timeWindow) contains(start, end time.Time) bool {
	return end.After(w.oldestEnd) && start.Before(w.latestStart)
}

// durationMinutes rounds the span between start and end to whole minutes.
func durationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

// FormatDuration renders a minute count as "<h>h <m>m", omitting zero
// components: 120 → "2h", 90 → "1h 30m", 45 → "45m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}

	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// newContest builds a normalized record, classifying type and difficulty
// from the name. It returns nil for records violating end > start.
func newContest(platform, name, url string, start, end time.Time) *models.Contest {
	if !end.After(start) {
		return nil
	}

	minutes := durationMinutes(start, end)
	contestType, difficulty := Classify(platform, name)

	return &models.Contest{
		Platform:        platform,
		Name:            name,
		URL:             url,
		StartTime:       start.UTC(),
		EndTime:         end.UTC(),
		Duration:        FormatDuration(minutes),
		DurationMinutes: minutes,
		Difficulty:      difficulty,
		ContestType:     contestType,
	}
}
