package resource

// EnumField is one bucketed column of a stats response.
type EnumField struct {
	Name   string // key in the response
	Column string
	Values []string
}

type StatsSpec struct {
	DateColumn string // column the start_date/end_date range applies to
	Fields     []EnumField
}

// Stats holds a total and, per field, a count for every declared value.
type Stats struct {
	Total   int64
	Buckets map[string]map[string]int64
}

func newStats(fields []EnumField) Stats {
	st := Stats{Buckets: make(map[string]map[string]int64, len(fields))}
	for _, f := range fields {
		b := make(map[string]int64, len(f.Values))
		for _, v := range f.Values {
			b[v] = 0
		}
		st.Buckets[f.Name] = b
	}
	return st
}

// add counts n documents with value v; undeclared values are dropped.
func (s Stats) add(field, v string, n int64) {
	b := s.Buckets[field]
	if _, ok := b[v]; ok {
		b[v] += n
	}
}

// Map is the JSON shape: {"total": n, "<field>": {"<value>": n}}.
func (s Stats) Map() map[string]any {
	out := make(map[string]any, len(s.Buckets)+1)
	out["total"] = s.Total
	for k, v := range s.Buckets {
		out[k] = v
	}
	return out
}
