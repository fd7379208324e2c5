package query

// Count is one key of a Counts tally.
type Count struct {
	Key string
	N   int
}

// Counts is an ordered tally. Every declared key is present, zero or not.
type Counts []Count

// Get returns the tally for key, or 0.
func (c Counts) Get(key string) int {
	for _, kv := range c {
		if kv.Key == key {
			return kv.N
		}
	}
	return 0
}

// Total sums every tally.
func (c Counts) Total() int {
	total := 0
	for _, kv := range c {
		total += kv.N
	}
	return total
}

// CountBy tallies items by attribute value over the given keys. Values
// outside keys are not counted.
func CountBy[T Queryable](items []T, attr string, keys []string) Counts {
	out := make(Counts, len(keys))
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		out[i] = Count{Key: k}
		pos[k] = i
	}
	for _, item := range items {
		v, ok := item.Attr(attr)
		if !ok {
			continue
		}
		if i, known := pos[v]; known {
			out[i].N++
		}
	}
	return out
}

// CountWhere returns how many items satisfy pred.
func CountWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
