package cumulative

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/promowebkz/deal-report-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the durable cumulative log of daily aggregates.
type Store interface {
	// Upsert persists one daily aggregate, replacing any existing
	// entry for the same date.
	Upsert(aggregate *domain.DailyAggregate) error
	// ReadAll returns the full log ordered by date.
	ReadAll() ([]*domain.DailyAggregate, error)
	// GetByDate returns the entry for one date, or nil when absent.
	GetByDate(date string) (*domain.DailyAggregate, error)
}

// fileStore keeps the log as a single pretty-printed JSON document: an
// ordered array of daily aggregate objects. A RWMutex serializes the
// scheduled pipeline's rewrites against the interactive query path.
type fileStore struct {
	path string
	mu   sync.RWMutex
}

func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Upsert(aggregate *domain.DailyAggregate) error {
	if aggregate == nil || aggregate.Date == "" {
		return errors.New("aggregate must carry a date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A log that exists but cannot be read must fail the upsert: writing
	// over it would replace the whole history with this single entry.
	entries, err := s.load()
	if err != nil {
		return err
	}

	// Index by date so reruns replace instead of appending duplicates.
	position := -1
	for i, entry := range entries {
		if entry.Date == aggregate.Date {
			position = i
			break
		}
	}

	if position >= 0 {
		entries[position] = aggregate
	} else {
		entries = append(entries, aggregate)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	return s.write(entries)
}

func (s *fileStore) ReadAll() ([]*domain.DailyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

func (s *fileStore) GetByDate(date string) (*domain.DailyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.Date == date {
			return entry, nil
		}
	}

	return nil, nil
}

// load reads the log from disk. A missing or empty file is an empty
// log. Malformed content is a data-loss event: it is logged at error
// severity and the log is reinitialized so the pipeline can keep
// running. Any other read failure is returned to the caller: it may be
// transient, and the file on disk still holds the history.
func (s *fileStore) load() ([]*domain.DailyAggregate, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.DailyAggregate{}, nil
		}
		return nil, errors.Wrap(err, "reading the cumulative log")
	}

	if len(data) == 0 {
		return []*domain.DailyAggregate{}, nil
	}

	var entries []*domain.DailyAggregate
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.WithError(err).WithField("path", s.path).Error("Cumulative log is corrupted, reinitializing to an empty log")
		return []*domain.DailyAggregate{}, nil
	}

	return entries, nil
}

// write serializes the full log and replaces the document atomically
// via a temp file and rename, so a crash mid-write cannot leave a
// half-written log on disk.
func (s *fileStore) write(entries []*domain.DailyAggregate) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing the cumulative log")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating the cumulative log directory")
	}

	tmp, err := os.CreateTemp(dir, ".cumulative-*.json")
	if err != nil {
		return errors.Wrap(err, "creating the temp log file")
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing the temp log file")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "flushing the temp log file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing the temp log file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(err, "replacing the cumulative log")
	}

	return nil
}
