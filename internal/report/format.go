package report

import (
	"fmt"
	"strings"
	"time"
)

const (
	nameWidth     = 7
	noDataLine    = "NoData"
	overallLabel  = "Average from 0615 to 2200"
	scrapeWarning = "⚠️ No data; likely a scrape error."
)

// Report is the rendered notification, one entry per line.
type Report []string

func (r Report) String() string {
	return strings.Join(r, "\n")
}

// Format renders s as the daily message for day.
func Format(day time.Time, s Summary) Report {
	lines := Report{"ERCOT RT: " + day.Format("2006-01-02")}

	for _, z := range s.Zones {
		if z.Valid {
			lines = append(lines, fmt.Sprintf("%-*s |  Onpk $%.2f", nameWidth, z.DisplayName, z.Value))
		} else {
			lines = append(lines, fmt.Sprintf("%-*s |  %s", nameWidth, z.DisplayName, noDataLine))
		}
	}

	lines = append(lines, "")
	if s.Overall.Valid {
		lines = append(lines, fmt.Sprintf("%s: $%.2f", overallLabel, s.Overall.Value))
	} else {
		lines = append(lines, scrapeWarning)
	}

	return lines
}

// Fallback is sent instead of the report when the page could not be fetched or parsed.
func Fallback(sourceURL string) string {
	return "Sorry information was unable to be displayed, contact developer if persist, " +
		"if urgent click link to see ERCOT data: " + sourceURL
}
