package diag

import "sort"

// Bag накапливает диагностики одного прогона до заданного лимита.
// Всё сверх лимита не хранится, а только считается в Dropped, чтобы
// обрезка была видна вызывающему.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
	errors  int
	warns   int
}

// NewBag returns an empty bag that keeps at most limit diagnostics.
func NewBag(limit int) *Bag {
	if limit <= 0 {
		limit = 1
	}
	return &Bag{items: make([]Diagnostic, 0, limit), limit: limit}
}

// Add collects one diagnostic. It returns false when the limit is
// exhausted; the diagnostic is then counted as dropped instead.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	switch {
	case d.Severity >= SevError:
		b.errors++
	case d.Severity == SevWarning:
		b.warns++
	}
	return true
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Cap returns the configured limit.
func (b *Bag) Cap() int { return b.limit }

// Dropped returns how many diagnostics were rejected over the limit.
func (b *Bag) Dropped() int { return b.dropped }

// HasErrors reports whether a fatal diagnostic was collected.
func (b *Bag) HasErrors() bool { return b.errors > 0 }

// HasWarnings reports whether any warning was collected.
func (b *Bag) HasWarnings() bool { return b.warns > 0 }

// Items возвращает собранные диагностики; срез принадлежит Bag,
// модифицировать его нельзя.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge takes over the diagnostics of other, raising the limit so none
// of them is lost. Dropped counts carry over.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if need := len(b.items) + len(other.items); need > b.limit {
		b.limit = need
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders diagnostics the way a front-end lists them: by file, then
// line with file-level entries first, then code, and errors before lesser
// severities at the same spot.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := &b.items[i], &b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line < dj.Primary.Line
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Severity > dj.Severity
	})
}

// Dedup collapses repeats of the same code at the same span; the first
// occurrence wins. Message text is deliberately not part of the key:
// one declaration site produces one complaint per code.
func (b *Bag) Dedup() {
	type spanKey struct {
		code Code
		file string
		line uint32
	}
	seen := make(map[spanKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := spanKey{code: d.Code, file: d.Primary.File, line: d.Primary.Line}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
	b.recount()
}

func (b *Bag) recount() {
	b.errors, b.warns = 0, 0
	for i := range b.items {
		switch {
		case b.items[i].Severity >= SevError:
			b.errors++
		case b.items[i].Severity == SevWarning:
			b.warns++
		}
	}
}
