package scrape

// Observation is one price reading for a zone at a time of day.
type Observation struct {
	Zone  string
	At    Clock
	Value float64
}

// ZoneSeries holds the retained values per zone. Zones keep header order and
// values keep document row order.
type ZoneSeries struct {
	zones  []string
	values map[string][]float64
}

func NewZoneSeries(zones ...string) *ZoneSeries {
	s := &ZoneSeries{values: make(map[string][]float64, len(zones))}
	for _, z := range zones {
		s.addZone(z)
	}
	return s
}

func (s *ZoneSeries) addZone(zone string) {
	if _, ok := s.values[zone]; ok {
		return
	}
	s.zones = append(s.zones, zone)
	s.values[zone] = nil
}

func (s *ZoneSeries) Add(o Observation) {
	s.addZone(o.Zone)
	s.values[o.Zone] = append(s.values[o.Zone], o.Value)
}

// Values returns the series of zone, or nil if the zone is unknown or empty.
func (s *ZoneSeries) Values(zone string) []float64 {
	return s.values[zone]
}

func (s *ZoneSeries) Zones() []string {
	return append([]string(nil), s.zones...)
}

// Len is the total number of retained observations.
func (s *ZoneSeries) Len() int {
	n := 0
	for _, v := range s.values {
		n += len(v)
	}
	return n
}
