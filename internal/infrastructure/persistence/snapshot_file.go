package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// FileSnapshotStore keeps the catalog snapshot as a JSON array in one
// file. Writes go through a temporary file and a rename.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Path() string {
	return s.path
}

// Load returns an empty snapshot when the file does not exist yet.
func (s *FileSnapshotStore) Load(ctx context.Context) (entity.CatalogSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger(ctx).Debug("no snapshot yet", slog.String("path", s.path))
			return entity.CatalogSnapshot{}, nil
		}

		return nil, domain.WrapError(err, errcodes.SnapshotCorrupted, fmt.Sprintf("read snapshot %s", s.path))
	}

	var records []giftRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domain.WrapError(err, errcodes.SnapshotCorrupted, fmt.Sprintf("decode snapshot %s", s.path))
	}

	return snapshotFromRecords(records), nil
}

func (s *FileSnapshotStore) Save(_ context.Context, items []entity.GiftItem) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return domain.WrapError(err, errcodes.SnapshotWriteFailed, "create snapshot dir")
	}

	data, err := json.MarshalIndent(newGiftRecords(items), "", "    ")
	if err != nil {
		return domain.WrapError(err, errcodes.SnapshotWriteFailed, "encode snapshot")
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec
		return domain.WrapError(err, errcodes.SnapshotWriteFailed, "write snapshot")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return domain.WrapError(err, errcodes.SnapshotWriteFailed, "replace snapshot")
	}

	return nil
}

// Size reports how many gifts the stored snapshot holds.
func (s *FileSnapshotStore) Size(ctx context.Context) (int, error) {
	snapshot, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}

	return len(snapshot), nil
}
