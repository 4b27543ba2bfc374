package deduplication

import (
	"sort"
)

// NewHashIndex creates an empty index
func NewHashIndex() *HashIndex {
	return &HashIndex{
		Counts: make(map[string]int),
		sizes:  make(map[string]int64),
	}
}

// add records a file under X (primary) or Y and increments its hash count
func (idx *HashIndex) add(record FileRecord, size int64, primary bool) {
	if primary {
		idx.X = append(idx.X, record)
	} else {
		idx.Y = append(idx.Y, record)
	}
	idx.Counts[record.Hash]++
	idx.sizes[record.Path] = size
}

// sort orders both record sets by path
func (idx *HashIndex) sort() {
	sort.Slice(idx.X, func(i, j int) bool { return idx.X[i].Path < idx.X[j].Path })
	sort.Slice(idx.Y, func(i, j int) bool { return idx.Y[i].Path < idx.Y[j].Path })
}

// All returns X and Y records merged and sorted by path
func (idx *HashIndex) All() []FileRecord {
	all := make([]FileRecord, 0, len(idx.X)+len(idx.Y))
	all = append(all, idx.X...)
	all = append(all, idx.Y...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	return all
}

// Total returns the number of indexed files
func (idx *HashIndex) Total() int {
	return len(idx.X) + len(idx.Y)
}

// XHashes returns the set of hashes present in the primary tree
func (idx *HashIndex) XHashes() map[string]struct{} {
	hashes := make(map[string]struct{}, len(idx.X))
	for _, r := range idx.X {
		hashes[r.Hash] = struct{}{}
	}
	return hashes
}

// Size returns the size recorded for path when it was indexed
func (idx *HashIndex) Size(path string) int64 {
	return idx.sizes[path]
}
