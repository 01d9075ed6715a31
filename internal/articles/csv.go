package articles

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
)

// CSVSource reads article records from CSV. Rows whose first field starts
// with the comment prefix are excluded; the title is a fixed column.
type CSVSource struct {
	open          func() (io.ReadCloser, error)
	name          string
	titleColumn   int
	commentPrefix string
	skipped       int
	logger        *slog.Logger
}

// NewCSVFile creates a CSVSource over the file at path. The file is opened
// when records are read.
func NewCSVFile(path string, cfg config.DatasetConfig) *CSVSource {
	s := newCSVSource(path, cfg)
	s.open = func() (io.ReadCloser, error) { return os.Open(path) }
	return s
}

// NewCSVReader creates a CSVSource over r. It can be read once.
func NewCSVReader(r io.Reader, cfg config.DatasetConfig) *CSVSource {
	s := newCSVSource("reader", cfg)
	s.open = func() (io.ReadCloser, error) { return io.NopCloser(r), nil }
	return s
}

func newCSVSource(name string, cfg config.DatasetConfig) *CSVSource {
	return &CSVSource{
		name:          name,
		titleColumn:   cfg.TitleColumn,
		commentPrefix: cfg.CommentPrefix,
		logger:        slog.Default().With("component", "csv-source", "source", name),
	}
}

// Titles returns the title of every non-comment record in file order.
func (s *CSVSource) Titles(ctx context.Context) ([]string, error) {
	var titles []string
	err := s.Records(ctx, func(rec Record) error {
		titles = append(titles, rec.Title)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// Records calls fn for every non-comment record. Blank rows and rows without
// a title column are counted in Skipped and logged.
func (s *CSVSource) Records(ctx context.Context, fn func(Record) error) error {
	f, err := s.open()
	if err != nil {
		s.logger.Debug("open failed", "error", err)
		return apperrors.Newf(apperrors.ErrSourceUnavailable, http.StatusServiceUnavailable,
			"Could not open file %s", s.name)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	s.skipped = 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedRecord, s.name, err)
		}
		// Physical line where the record starts; quoted fields may span lines.
		line, _ := r.FieldPos(0)
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			s.skip(line, "blank row")
			continue
		}
		if s.commentPrefix != "" && strings.HasPrefix(row[0], s.commentPrefix) {
			continue
		}
		if s.titleColumn >= len(row) {
			s.skip(line, fmt.Sprintf("row has %d fields, title column is %d", len(row), s.titleColumn))
			continue
		}
		if err := fn(Record{ID: row[0], Title: row[s.titleColumn]}); err != nil {
			return err
		}
	}
	if s.skipped > 0 {
		s.logger.Warn("skipped malformed records", "count", s.skipped)
	}
	return nil
}

// Skipped returns how many rows the last read dropped as malformed.
func (s *CSVSource) Skipped() int {
	return s.skipped
}

func (s *CSVSource) skip(line int, reason string) {
	s.skipped++
	s.logger.Debug("skipping record", "line", line, "reason", reason)
}
