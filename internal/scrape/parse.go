package scrape

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableSelector identifies the SPP table in the source page.
const TableSelector = "table#realTimeSPPTable"

// ParseTable extracts the windowed zone series from an SPP page. Rows with a
// bad time cell or the wrong cell count are skipped, as are single cells that
// are not numbers. Only a missing table is an error.
func ParseTable(r io.Reader) (*ZoneSeries, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Reason: "read document", Err: err}
	}

	table := doc.Find(TableSelector).First()
	if table.Length() == 0 {
		return nil, &ParseError{Reason: "no " + TableSelector + " in document"}
	}

	headers := cellTexts(table.Find("th"))
	var zones []string
	if len(headers) > 0 {
		zones = headers[1:]
	}
	series := NewZoneSeries(zones...)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		obs, ok := parseRow(cellTexts(row.Find("td")), headers)
		if !ok {
			return
		}
		for _, o := range obs {
			series.Add(o)
		}
	})

	return series, nil
}

// ParseBytes is ParseTable over an in-memory body.
func ParseBytes(body []byte) (*ZoneSeries, error) {
	return ParseTable(bytes.NewReader(body))
}

// parseRow turns one table row into observations. ok is false when the row
// must be dropped as a whole.
func parseRow(cells, headers []string) ([]Observation, bool) {
	if len(cells) == 0 || len(cells) != len(headers) {
		return nil, false
	}
	at, ok := ParseClock(cells[0])
	if !ok || !InWindow(at) {
		return nil, false
	}

	obs := make([]Observation, 0, len(cells)-1)
	for i, cell := range cells[1:] {
		v, ok := parseValue(cell)
		if !ok {
			continue
		}
		obs = append(obs, Observation{Zone: headers[i+1], At: at, Value: v})
	}
	return obs, true
}

func parseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func cellTexts(sel *goquery.Selection) []string {
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}
