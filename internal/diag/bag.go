package diag

import (
	"sort"
	"sync"
)

// Bag is a bounded collection of diagnostics. It is safe for concurrent Add.
type Bag struct {
	mu    sync.Mutex
	items []*Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1 << 16
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d *Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	return b.countAtLeast(SevError) > 0
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	return b.countAtLeast(SevWarning) > 0
}

func (b *Bag) countAtLeast(sev Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, d := range b.items {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// длина
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items
}

// Merge объединяет диагностики из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	items := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	if total := len(b.items) + len(items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, items...)
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// Transform applies fn to each diagnostic in place.
func (b *Bag) Transform(fn func(*Diagnostic)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.items {
		fn(d)
	}
}

// Sort сортирует диагностики по: file, start, end, severity (desc), code (asc)
// для стабильного и детерминированного порядка вывода.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		// severity по убыванию: Error > Warning > Info
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+Primary+Message)
func (b *Bag) Dedup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[dedupKey]bool, len(b.items))
	out := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := dedupKey{code: d.Code, sev: d.Severity, file: d.Primary.File, start: d.Primary.Start, end: d.Primary.End, msg: d.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
