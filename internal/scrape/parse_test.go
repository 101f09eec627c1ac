package scrape

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(headers []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table id="realTimeSPPTable"><tr>`)
	for _, h := range headers {
		fmt.Fprintf(&b, "<th> %s </th>", h)
	}
	b.WriteString("</tr>")
	for _, r := range rows {
		b.WriteString("<tr>")
		for _, c := range r {
			fmt.Fprintf(&b, "<td>%s</td>", c)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func TestParseTable_DropsRowsOutsideWindow(t *testing.T) {
	doc := page([]string{"Time", "HB_NORTH", "HB_SOUTH"},
		[]string{"10:00", "50.0", "60.0"},
		[]string{"23:00", "999", "999"},
	)

	series, err := ParseTable(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"HB_NORTH", "HB_SOUTH"}, series.Zones())
	assert.Equal(t, []float64{50.0}, series.Values("HB_NORTH"))
	assert.Equal(t, []float64{60.0}, series.Values("HB_SOUTH"))
}

func TestParseTable_WindowBoundaries(t *testing.T) {
	doc := page([]string{"Time", "HB_NORTH"},
		[]string{"06:14", "1"},
		[]string{"06:15", "2"},
		[]string{"22:00", "3"},
		[]string{"22:01", "4"},
		[]string{"6:5", "5"},
		[]string{"21:5", "6"},
	)

	series, err := ParseTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 6}, series.Values("HB_NORTH"))
}

func TestParseTable_MalformedCellKeepsRow(t *testing.T) {
	doc := page([]string{"Time", "HB_NORTH", "HB_SOUTH"},
		[]string{"12:00", "N/A", "42.5"},
	)

	series, err := ParseTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, series.Values("HB_NORTH"))
	assert.Equal(t, []float64{42.5}, series.Values("HB_SOUTH"))
}

func TestParseTable_SkipsBadRows(t *testing.T) {
	doc := page([]string{"Time", "HB_NORTH", "HB_SOUTH"},
		[]string{"noon", "1", "2"},
		[]string{"12:00", "3"},
		[]string{"12:05", "4", "5", "6"},
		[]string{"12:10", "7", "8"},
	)

	series, err := ParseTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, series.Values("HB_NORTH"))
	assert.Equal(t, []float64{8}, series.Values("HB_SOUTH"))
	assert.Equal(t, 2, series.Len())
}

func TestParseTable_RejectsNonFiniteValues(t *testing.T) {
	doc := page([]string{"Time", "HB_NORTH"},
		[]string{"12:00", "NaN"},
		[]string{"12:05", "Inf"},
		[]string{"12:10", "-12.25"},
	)

	series, err := ParseTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []float64{-12.25}, series.Values("HB_NORTH"))
}

func TestParseTable_MissingTable(t *testing.T) {
	_, err := ParseTable(strings.NewReader(`<html><table id="other"><tr><td>1</td></tr></table></html>`))
	require.Error(t, err)

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want Clock
		ok   bool
	}{
		{"06:15", WindowStart, true},
		{"6:15", WindowStart, true},
		{"22:00", WindowEnd, true},
		{"00:00", 0, true},
		{"24:00", 0, false},
		{"12:5", Clock(12*60 + 5), true},
		{"6:5", Clock(6*60 + 5), true},
		{"12:555", 0, false},
		{"12:60", 0, false},
		{"", 0, false},
		{"Time", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "06:15", WindowStart.String())
	assert.Equal(t, "22:00", WindowEnd.String())
}
