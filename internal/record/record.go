package record

// Record is one immutable version of a key's value.
type Record struct {
	Value     []byte
	Duration  float64
	Timestamp int64
}

// History is the ordered list of versions for a key, oldest first.
// It is only ever appended to or dropped as a whole.
type History []Record

// Current returns the most recent record.
func (h History) Current() (Record, bool) {
	if len(h) == 0 {
		return Record{}, false
	}
	return h[len(h)-1], true
}

// Average returns the mean duration across all versions, or 0 if empty.
func (h History) Average() float64 {
	if len(h) == 0 {
		return 0
	}
	var sum float64
	for _, r := range h {
		sum += r.Duration
	}
	return sum / float64(len(h))
}
