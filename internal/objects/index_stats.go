package objects

// IndexStat describes the occupancy of one name index
type IndexStat struct {
	Kind    string
	Keys    int
	Buckets int
}

// LoadFactor is the average chain length
func (st IndexStat) LoadFactor() float64 {
	if st.Buckets == 0 {
		return 0
	}
	return float64(st.Keys) / float64(st.Buckets)
}

type sizedIndex interface {
	Len() int
	Buckets() int
}

// IndexStats reports every name index in kind order. A freed store reports
// empty indexes.
func (s *Store) IndexStats() []IndexStat {
	indexes := []struct {
		kind string
		ix   sizedIndex
	}{
		{KindHost, s.hostIndex},
		{KindService, s.serviceIndex},
		{KindHostGroup, s.hostGroupIndex},
		{KindServiceGroup, s.serviceGroupIndex},
		{KindContactGroup, s.contactGroupIndex},
		{KindContact, s.contactIndex},
		{KindTimePeriod, s.timePeriodIndex},
		{KindCommand, s.commandIndex},
	}

	out := make([]IndexStat, 0, len(indexes))
	for _, e := range indexes {
		out = append(out, IndexStat{Kind: e.kind, Keys: e.ix.Len(), Buckets: e.ix.Buckets()})
	}
	return out
}
