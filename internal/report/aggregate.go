package report

import "strconv"

// Zone is a curated pricing zone and the name subscribers see.
type Zone struct {
	ID          string
	DisplayName string
}

// CuratedZones is the ordered set of zones included in the report.
var CuratedZones = []Zone{
	{ID: "HB_SOUTH", DisplayName: "SOUTH"},
	{ID: "HB_HOUSTON", DisplayName: "HOUSTON"},
	{ID: "HB_BUSAVG", DisplayName: "BUSAVG"},
	{ID: "HB_HUBAVG", DisplayName: "HUBAVG"},
	{ID: "HB_NORTH", DisplayName: "NORTH"},
	{ID: "HB_PAN", DisplayName: "PAN"},
	{ID: "HB_WEST", DisplayName: "WEST"},
}

// Average is a rounded mean. Valid is false when there was nothing to average.
type Average struct {
	Value float64
	Valid bool
}

type ZoneAverage struct {
	Zone
	Average
}

type Summary struct {
	Zones   []ZoneAverage
	Overall Average
}

// Series is the read side of scrape.ZoneSeries.
type Series interface {
	Values(zone string) []float64
}

// Aggregate averages every curated zone and the pooled values of all of them.
// The overall figure weights each observation equally, so it is not the mean
// of the zone means.
func Aggregate(series Series, zones []Zone) Summary {
	s := Summary{Zones: make([]ZoneAverage, 0, len(zones))}

	var pooled []float64
	for _, z := range zones {
		var vals []float64
		if series != nil {
			vals = series.Values(z.ID)
		}
		s.Zones = append(s.Zones, ZoneAverage{Zone: z, Average: mean(vals)})
		pooled = append(pooled, vals...)
	}
	s.Overall = mean(pooled)

	return s
}

func mean(vals []float64) Average {
	if len(vals) == 0 {
		return Average{}
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return Average{Value: round2(sum / float64(len(vals))), Valid: true}
}

// round2 rounds the exact binary value to cents, ties to even.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
