package dupes

// Bucketer folds walk output into size buckets. It must see the whole walk
// before Buckets is meaningful.
type Bucketer struct {
	bySize map[int64][]FileRecord
	sizes  []int64 // first-seen order
	seen   int
}

// NewBucketer creates an empty Bucketer.
func NewBucketer() *Bucketer {
	return &Bucketer{bySize: make(map[int64][]FileRecord)}
}

// Add records one file. Empty files are never duplicate candidates.
func (b *Bucketer) Add(rec FileRecord) {
	b.seen++
	if rec.Size <= 0 {
		return
	}
	if _, ok := b.bySize[rec.Size]; !ok {
		b.sizes = append(b.sizes, rec.Size)
	}
	b.bySize[rec.Size] = append(b.bySize[rec.Size], rec)
}

// Seen returns how many records were added, empty files included.
func (b *Bucketer) Seen() int {
	return b.seen
}

// Buckets returns every bucket with at least two files, ordered by the walk
// position of each bucket's first file.
func (b *Bucketer) Buckets() []SizeBucket {
	var out []SizeBucket
	for _, size := range b.sizes {
		files := b.bySize[size]
		if len(files) < 2 {
			continue
		}
		out = append(out, SizeBucket{Size: size, Files: files})
	}
	return out
}

// CountCandidates returns the number of files across buckets.
func CountCandidates(buckets []SizeBucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.Files)
	}
	return n
}
