// internal/infra/dataset/file_source.go
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"visa_bulletin_chart/internal/domain/bulletin"

	"github.com/sirupsen/logrus"
)

// ErrMalformedDataset is returned when the file is neither a JSON array nor a data.js assignment.
var ErrMalformedDataset = errors.New("malformed dataset")

// rawRecord mirrors one entry written by the bulletin scraper. Null fields decode as empty.
type rawRecord struct {
	Month          string `json:"month"`
	FinalAction    string `json:"final_action"`
	DatesForFiling string `json:"dates_for_filing"`
	SourceURL      string `json:"source_url"`
}

// FileSource reads bulletin records from a local file. The file may hold a plain
// JSON array or the scraper's `const visaData = [...];` script.
type FileSource struct {
	path   string
	logger *logrus.Entry
}

func NewFileSource(path string, logger *logrus.Entry) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Load reads the file on every call so an updated dataset is picked up without a restart.
func (s *FileSource) Load(ctx context.Context) ([]bulletin.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", s.path, err)
	}

	records, err := Decode(content, s.logger)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", s.path, err)
	}
	s.logger.WithFields(logrus.Fields{"path": s.path, "records": len(records)}).Debug("Dataset loaded")
	return records, nil
}

// Decode parses dataset content. Duplicate months keep their first occurrence and
// bulletin-native dates such as 01FEB16 are rewritten as ISO dates.
func Decode(content []byte, logger *logrus.Entry) ([]bulletin.Record, error) {
	payload, err := arrayPayload(content)
	if err != nil {
		return nil, err
	}

	var raws []rawRecord
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	records := make([]bulletin.Record, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, r := range raws {
		if _, dup := seen[r.Month]; dup {
			logger.WithFields(logrus.Fields{"month": r.Month, "source_url": r.SourceURL}).Warn("Skipping duplicate month")
			continue
		}
		seen[r.Month] = struct{}{}
		records = append(records, bulletin.Record{
			Month:          r.Month,
			FinalAction:    ConvertBulletinDate(r.FinalAction),
			DatesForFiling: ConvertBulletinDate(r.DatesForFiling),
		})
	}
	return records, nil
}

// arrayPayload strips an optional `const name = ... ;` wrapper around the JSON array.
func arrayPayload(content []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(content)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		return trimmed, nil
	}

	start := bytes.IndexByte(trimmed, '[')
	end := bytes.LastIndexByte(trimmed, ']')
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no record array found", ErrMalformedDataset)
	}
	return trimmed[start : end+1], nil
}
