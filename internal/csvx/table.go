package csvx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/settingskeeper/internal/filex"
	"github.com/dmitrijs2005/settingskeeper/internal/logging"
)

// ErrNoChange may be returned by an Update callback to leave the file as it
// is. Update then returns nil.
var ErrNoChange = errors.New("no change")

const filePerm os.FileMode = 0o660

// Table guards a single CSV file. Every View and Update holds the table's
// mutex for the whole load → callback → write cycle, so operations on one
// table are strictly serialized.
//
// The mutex is not reentrant. Callbacks receive the records that were loaded
// under the guard and must work on that slice instead of calling back into
// the same Table.
type Table[T any] struct {
	mu     sync.Mutex
	path   string
	codec  Codec[T]
	logger logging.Logger
}

func NewTable[T any](path string, codec Codec[T], logger logging.Logger) *Table[T] {
	return &Table[T]{
		path:   path,
		codec:  codec,
		logger: logger.With("table", path),
	}
}

// Path returns the backing file path.
func (t *Table[T]) Path() string {
	return t.path
}

// Init seeds a header-only file if none exists. An existing file is left
// untouched but must parse, otherwise ErrMalformedTable is returned.
func (t *Table[T]) Init(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	empty, err := EncodeRows(t.codec.Header(), nil)
	if err != nil {
		return err
	}

	created, err := filex.WriteFileIfMissing(t.path, empty, filePerm)
	if err != nil {
		return err
	}
	if created {
		t.logger.Info(ctx, "table created")
		return nil
	}

	_, err = t.load()
	return err
}

// View loads all records and passes them to fn.
func (t *Table[T]) View(ctx context.Context, fn func(records []T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.load()
	if err != nil {
		t.logger.Error(ctx, "table load failed", "error", err)
		return err
	}

	return fn(records)
}

// Update loads all records, hands them to fn and atomically replaces the file
// with whatever fn returns. If fn fails the file is not touched.
func (t *Table[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.load()
	if err != nil {
		t.logger.Error(ctx, "table load failed", "error", err)
		return err
	}

	next, err := fn(records)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	data, err := Encode(t.codec, next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.path, err)
	}
	if err := filex.WriteFileAtomic(t.path, data, filePerm); err != nil {
		t.logger.Error(ctx, "table write failed", "error", err)
		return err
	}

	t.logger.Debug(ctx, "table rewritten", "rows", len(next))
	return nil
}

func (t *Table[T]) load() ([]T, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}

	records, err := Decode(t.codec, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.path, err)
	}
	return records, nil
}
