package constants

// File permissions
const (
	StandardDirPerms  = 0o755 // Standard directory permissions
	StandardFilePerms = 0o644 // Standard file permissions
)

// Default file names, relative to the user's home directory
const (
	DefaultConfigFileName  = ".clean_files.yaml"
	DefaultHistoryFileName = ".clean_files_history.json"
)

// LockFilePrefix names the per-tree session lock files created in the temp dir.
const LockFilePrefix = "cleanfiles-"
