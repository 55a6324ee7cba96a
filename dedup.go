// dedup.go
package main

// Deduplicator suppresses repeat emission of the same logical document
// within one run. Keys are (filename stem, category). The set lives for
// the duration of the run; there is no eviction.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Accept reports whether the key is new, recording it when so. A false
// return means the caller must drop the document; that is not an error.
func (d *Deduplicator) Accept(stem, category string) bool {
	key := stem + "-" + category
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}
