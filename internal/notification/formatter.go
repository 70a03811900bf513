package notification

import (
	"fmt"
	"strings"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
)

var platformLabels = map[string]string{
	models.PlatformCodeforces: "Codeforces",
	models.PlatformCodechef:   "CodeChef",
	models.PlatformLeetcode:   "LeetCode",
}

var timingLabels = map[string]string{
	models.NotificationTiming1Hour:  "1 hour",
	models.NotificationTiming3Hours: "3 hours",
	models.NotificationTiming1Day:   "1 day",
}

type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Subject(contest *models.Contest, prefs *models.NotificationPreference) string {
	return fmt.Sprintf(
		"%s starts in %s — %s",
		contest.Name,
		timingLabels[prefs.Timing()],
		PlatformLabel(contest.Platform),
	)
}

func (f *Formatter) Body(user *models.User, contest *models.Contest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<p>Hi %s,</p>", user.Username)
	fmt.Fprintf(&b, "<p><b>%s</b> on %s is starting soon.</p>", contest.Name, PlatformLabel(contest.Platform))
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Starts: %s UTC</li>", contest.StartTime.UTC().Format("Mon, 02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "<li>Duration: %s</li>", contest.Duration)

	if contest.Difficulty != "" {
		fmt.Fprintf(&b, "<li>Difficulty: %s</li>", contest.Difficulty)
	}

	b.WriteString("</ul>")

	if contest.URL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Go to contest</a></p>`, contest.URL)
	}

	b.WriteString("<p>Good luck!<br>ContestTrack</p>")

	return b.String()
}

// PlatformLabel returns the display name for a platform identifier.
func PlatformLabel(platform string) string {
	if label, ok := platformLabels[platform]; ok {
		return label
	}
	return platform
}
