package export

import (
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// BackupFilename is the suggested name for a backup download.
const BackupFilename = "finance-backup.json"

// Backup serializes the dataset in the same schema the snapshot store
// uses, so a backup file and a stored snapshot are interchangeable.
func Backup(ds *core.Dataset) ([]byte, error) {
	blob, err := storage.EncodeDataset(ds)
	if err != nil {
		return nil, fmt.Errorf("export backup: %w", err)
	}
	return blob, nil
}

// Restore parses a user-supplied backup file. A malformed file surfaces
// storage.ErrCorruptSnapshot; missing collections restore as empty.
func Restore(blob []byte) (*core.Dataset, error) {
	ds, err := storage.DecodeDataset(blob)
	if err != nil {
		return nil, fmt.Errorf("import backup: %w", err)
	}
	return ds, nil
}
