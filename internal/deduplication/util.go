package deduplication

// ComputeStats summarizes idx. ReclaimableBytes is the space that would be
// freed by keeping one copy of every duplicated content.
func ComputeStats(idx *HashIndex) IndexStats {
	stats := IndexStats{
		TotalFiles:   idx.Total(),
		UniqueHashes: len(idx.Counts),
	}

	sizeByHash := make(map[string]int64, len(idx.Counts))
	for _, r := range idx.All() {
		size := idx.Size(r.Path)
		stats.TotalSize += size
		sizeByHash[r.Hash] = size
	}

	for hash, count := range idx.Counts {
		if count > 1 {
			stats.DuplicateFiles += count - 1
			stats.ReclaimableBytes += sizeByHash[hash] * int64(count-1)
		}
	}

	return stats
}
