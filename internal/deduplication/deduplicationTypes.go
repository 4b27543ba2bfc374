package deduplication

// FileRecord is one indexed regular file: its absolute path and the digest of
// its content.
type FileRecord struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// IndexStats summarizes a HashIndex
type IndexStats struct {
	TotalFiles       int   `json:"total_files"`
	UniqueHashes     int   `json:"unique_hashes"`
	DuplicateFiles   int   `json:"duplicate_files"`
	TotalSize        int64 `json:"total_size"`
	ReclaimableBytes int64 `json:"reclaimable_bytes"`
}

// HashIndex is the content-addressed index of every file under the primary
// tree (X) and the secondary trees (Y).
//
// Counts holds the number of occurrences of each hash across X and Y. X and Y
// are disjoint and sorted by path; the counts sum to len(X)+len(Y).
type HashIndex struct {
	Counts map[string]int
	X      []FileRecord
	Y      []FileRecord

	sizes map[string]int64
}
