package backup

import "errors"

var (
	// ErrStorageNotFound means there is no OpenCode storage root to export.
	ErrStorageNotFound = errors.New("storage directory not found")
	// ErrBackupNotFound means the backup file given to import does not exist.
	ErrBackupNotFound = errors.New("backup file not found")
	// ErrInvalidBackup means the backup file is not a valid export document.
	ErrInvalidBackup = errors.New("invalid backup file")
	// ErrUnsupportedVersion means the backup was written by an incompatible
	// exporter.
	ErrUnsupportedVersion = errors.New("unsupported backup version")
)
