package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Store is an append-only CSV store of completed hand records. Appends are
// queued to a background writer so the decision hot path never touches
// disk; Close drains the queue.
type Store struct {
	path   string
	logger *log.Logger

	file   *os.File
	writer *csv.Writer

	queue chan Record
	done  chan struct{}
	once  sync.Once
}

// Open opens or creates the store at path, writing the header for new
// files, and starts the background writer.
func Open(path string, logger *log.Logger) (*Store, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("history: stat %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("history: write header: %w", err)
		}
		writer.Flush()
	}

	s := &Store{
		path:   path,
		logger: logger.WithPrefix("history"),
		file:   file,
		writer: writer,
		queue:  make(chan Record, 256),
		done:   make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func (s *Store) run() {
	defer close(s.done)
	for rec := range s.queue {
		if err := s.writer.Write(rec.row()); err != nil {
			s.logger.Error("failed to append record", "hand", rec.HandID, "err", err)
			continue
		}
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			s.logger.Error("failed to flush record", "hand", rec.HandID, "err", err)
		}
	}
}

// Append queues a completed hand record for persistence. It never blocks
// the caller for disk I/O; if the queue is full the record is dropped with
// a warning rather than stalling a decision.
func (s *Store) Append(rec Record) {
	select {
	case s.queue <- rec:
	default:
		s.logger.Warn("history queue full, dropping record", "hand", rec.HandID)
	}
}

// Close drains pending appends and closes the underlying file.
func (s *Store) Close() error {
	s.once.Do(func() { close(s.queue) })
	<-s.done
	return s.file.Close()
}

// Load reads every record currently in the store. Malformed rows are
// skipped with a warning so one bad line never poisons profile seeding.
func Load(path string, logger *log.Logger) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records []Record
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("history: read %s: %w", path, err)
		}
		if first {
			first = false
			if len(row) > 0 && row[0] == header[0] {
				continue
			}
		}

		rec, err := recordFromRow(row)
		if err != nil {
			logger.Warn("skipping malformed history row", "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
