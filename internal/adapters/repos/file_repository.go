package repos

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/architeacher/inventory/internal/codec"
	"github.com/architeacher/inventory/internal/domain/model"
)

const filePermissions = 0o644

// FileRepository stores one encoded device per line in a plain text file.
type FileRepository struct {
	path     string
	observer RecordObserver
}

// NewFileRepository fails with model.ErrStoreNotFound when path does not exist.
func NewFileRepository(path string, observer RecordObserver) (*FileRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrStoreNotFound, path)
		}

		return nil, fmt.Errorf("%w: %s: %w", model.ErrStoreUnavailable, path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", model.ErrStoreUnavailable, path)
	}

	return &FileRepository{
		path:     path,
		observer: observerOrNop(observer),
	}, nil
}

func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) LoadAll(ctx context.Context) ([]model.Device, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", model.ErrStoreUnavailable, r.path, err)
	}
	defer file.Close()

	records, err := readLines(file)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", model.ErrStoreUnavailable, r.path, err)
	}

	return decodeRecords(ctx, records, r.observer), nil
}

// readLines has no line length limit, so a single oversized record cannot fail the whole load.
func readLines(src io.Reader) ([]string, error) {
	var (
		records []string
		reader  = bufio.NewReader(src)
	)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			records = append(records, strings.TrimSuffix(line, "\r"))
		}

		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, err
		}
	}
}

func (r *FileRepository) SaveAll(_ context.Context, devices []model.Device) error {
	var sb strings.Builder

	for _, record := range codec.EncodeAll(devices) {
		sb.WriteString(record)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(r.path, []byte(sb.String()), filePermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %w", model.ErrStoreUnavailable, r.path, err)
	}

	return nil
}

// Ping reports whether the file is still present and readable.
func (r *FileRepository) Ping(_ context.Context) error {
	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", model.ErrStoreNotFound, r.path)
		}

		return fmt.Errorf("%w: %s: %w", model.ErrStoreUnavailable, r.path, err)
	}

	return file.Close()
}
