package deduplication

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

// EmptyHash is the digest of zero-length content
var EmptyHash = HashBytes(nil)

// HashBytes returns the hex digest of data
func HashBytes(data []byte) string {
	return formatDigest(xxhash.Sum64(data))
}

// HashFile streams the file at path through the digest
func HashFile(fsys afero.Fs, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return formatDigest(h.Sum64()), nil
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
