package util

import "testing"

func TestHumanReadableSize(t *testing.T) {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)

	tests := []struct {
		name string
		size int64
		want string
	}{
		{"EmptyTree", 0, "0 B"},
		{"LastByteValue", kb - 1, "1023 B"},
		{"OneKB", kb, "1.0 KB"},
		{"FractionalKB", kb + kb/2, "1.5 KB"},
		{"RoundsUpBelowMB", mb - 1, "1024.0 KB"},
		{"OneMB", mb, "1.0 MB"},
		{"ReclaimableMB", 250 * mb, "250.0 MB"},
		{"OneGB", gb, "1.0 GB"},
		{"OneTB", tb, "1.0 TB"},
		{"CappedAtTB", 2048 * tb, "2048.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HumanReadableSize(tt.size); got != tt.want {
				t.Errorf("HumanReadableSize(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}
