package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tirasundara/transaction-etl/internal/domain"
	"github.com/tirasundara/transaction-etl/pkg/fileutil"
)

// CSVSource implements the RawRecordSource interface for a local CSV export.
// It exists for offline runs against a file instead of the live provider.
type CSVSource struct {
	FilePath   string
	Identifier string
	DateFormat string
}

// NewCSVSource creates a new CSVSource
func NewCSVSource(filePath string, dateFormat string) *CSVSource {
	if dateFormat == "" {
		dateFormat = domain.DateFormat // Default format
	}

	// Use the filename as the source identifier
	identifier := filepath.Base(filePath)
	identifier = strings.TrimSuffix(identifier, filepath.Ext(identifier))

	return &CSVSource{
		FilePath:   filePath,
		Identifier: identifier,
		DateFormat: dateFormat,
	}
}

// SourceIdentifier returns the source file name
func (s *CSVSource) SourceIdentifier() string {
	return s.Identifier
}

// FetchRange reads the file and returns the raw records whose
// transaction_date falls between startDate and endDate (inclusive). Records
// with an unparseable date pass through untouched so the cleaner can report
// them with the rest of the batch.
func (s *CSVSource) FetchRange(ctx context.Context, startDate, endDate time.Time) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader := fileutil.NewCSVReader(s.FilePath)
	rows, err := reader.ReadRecords()
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}

	startDay := startDate.Truncate(24 * time.Hour)
	endDay := endDate.Truncate(24 * time.Hour)

	var records []domain.RawRecord
	for _, row := range rows {
		record := make(domain.RawRecord, len(row))
		for name, value := range row {
			if value == "" {
				// An empty cell is a missing value, not an empty string
				record[name] = nil
				continue
			}
			record[name] = value
		}

		if raw, ok := record.Field("transaction_date"); ok {
			if day, err := time.Parse(s.DateFormat, raw.(string)); err == nil {
				day = day.Truncate(24 * time.Hour)
				if day.Before(startDay) || day.After(endDay) {
					continue
				}
			}
		}

		records = append(records, record)
	}

	return records, nil
}
