package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghelid/weather-mcp/internal/instrumentation"
	"github.com/ghelid/weather-mcp/internal/logging"
)

// DefaultPath is the storage file name, relative to the working directory.
const DefaultPath = "tasks.json"

// Operation labels used for metrics.
const (
	OperationAdd    = "add"
	OperationSearch = "search"
)

// Recorder receives timing for every store operation.
type Recorder interface {
	RecordStoreOperation(ctx context.Context, operation, status string, duration time.Duration)
}

// Store is a JSON file backed task list.
type Store struct {
	mu      sync.Mutex
	path    string
	logger  logging.Logger
	metrics Recorder
}

// New creates a store backed by the file at path. An empty path selects
// DefaultPath. The file is not touched until the first Add or Search.
func New(path string, logger logging.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{path: path, logger: logger}
}

// SetMetrics sets the recorder for store operation metrics.
func (s *Store) SetMetrics(r Recorder) {
	s.metrics = r
}

// Path returns the absolute path of the storage file.
func (s *Store) Path() string {
	return s.path
}

// Add validates task.DueDate, appends task to the stored list and rewrites
// the file. Storage is not touched when validation fails.
func (s *Store) Add(ctx context.Context, task Task) (result *AddResult, err error) {
	ctx, span := instrumentation.StartUpstreamSpan(ctx, instrumentation.ServiceTaskStore, OperationAdd,
		attribute.String(instrumentation.SpanAttrDueDate, task.DueDate))
	defer span.End()
	defer s.record(ctx, span, OperationAdd, time.Now(), &err)

	s.logger.Info("adding new task", "name", task.Name, logging.DueDate(task.DueDate))

	if err := ValidateDueDate(task.DueDate); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, _, err := s.load()
	if err != nil {
		s.logger.Error("error adding task", logging.Path(s.path), logging.Err(err))
		return nil, err
	}

	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		s.logger.Error("error adding task", logging.Path(s.path), logging.Err(err))
		return nil, err
	}

	s.logger.Info("task added successfully", "name", task.Name, logging.TaskCount(len(tasks)))
	return &AddResult{Task: task, Total: len(tasks), Path: s.path}, nil
}

// Search returns the stored tasks whose due date equals dueDate, or every
// task when dueDate is empty. A non-empty filter is validated once the file
// is known to hold tasks.
func (s *Store) Search(ctx context.Context, dueDate string) (result *SearchResult, err error) {
	ctx, span := instrumentation.StartUpstreamSpan(ctx, instrumentation.ServiceTaskStore, OperationSearch,
		attribute.String(instrumentation.SpanAttrDueDate, dueDate))
	defer span.End()
	defer s.record(ctx, span, OperationSearch, time.Now(), &err)

	s.logger.Info("searching tasks", logging.DueDate(dueDate))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	tasks, state, err := s.load()
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("error searching tasks", logging.Path(s.path), logging.Err(err))
		return nil, err
	}

	// A missing or empty file reports its state whatever the filter.
	if dueDate != "" && state == StateReady {
		if err := ValidateDueDate(dueDate); err != nil {
			return nil, err
		}
	}

	matches := tasks
	if dueDate != "" {
		matches = make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.DueDate == dueDate {
				matches = append(matches, t)
			}
		}
	}

	s.logger.Debug("search complete", logging.DueDate(dueDate), logging.TaskCount(len(matches)))
	return &SearchResult{DueDate: dueDate, State: state, Tasks: matches}, nil
}

// load reads the storage file. Callers must hold s.mu.
func (s *Store) load() ([]Task, State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, StateMissing, nil
		}
		return nil, StateMissing, fmt.Errorf("failed to read tasks file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, StateEmpty, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, StateReady, fmt.Errorf("failed to decode tasks file %s: %w", s.path, err)
	}
	return tasks, StateReady, nil
}

// save replaces the storage file with tasks. The new content is written to
// a temporary file in the same directory and renamed over the old one.
// Callers must hold s.mu.
func (s *Store) save(tasks []Task) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary tasks file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write tasks file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write tasks file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set tasks file permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace tasks file: %w", err)
	}
	return nil
}

func (s *Store) record(ctx context.Context, span trace.Span, operation string, start time.Time, errp *error) {
	status := instrumentation.StatusSuccess
	if *errp != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, *errp)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(ctx, operation, status, time.Since(start))
	}
}
