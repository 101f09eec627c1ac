package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultBaseURL = "https://www.ercot.com/content/cdr/html"

// URLFor returns the real-time SPP page address for the given day.
func URLFor(base string, day time.Time) string {
	return fmt.Sprintf("%s/%s_real_time_spp.html", strings.TrimRight(base, "/"), day.Format("20060102"))
}

// Locator builds today's source address from its clock.
type Locator struct {
	BaseURL  string
	Clock    clockwork.Clock
	Location *time.Location
}

func NewLocator(baseURL string, loc *time.Location) *Locator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if loc == nil {
		loc = time.Local
	}
	return &Locator{
		BaseURL:  baseURL,
		Clock:    clockwork.NewRealClock(),
		Location: loc,
	}
}

// Today returns the current calendar date in the locator's location.
func (l *Locator) Today() time.Time {
	return l.Clock.Now().In(l.Location)
}

// URL returns the source address for day under the locator's base URL.
func (l *Locator) URL(day time.Time) string {
	return URLFor(l.BaseURL, day)
}
