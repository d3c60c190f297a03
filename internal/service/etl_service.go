package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tirasundara/transaction-etl/internal/cleaner"
	"github.com/tirasundara/transaction-etl/internal/domain"
	"github.com/tirasundara/transaction-etl/internal/enricher"
	"github.com/tirasundara/transaction-etl/internal/projector"
)

// sampleSize is how many enriched records the run report keeps for preview
const sampleSize = 10

// ETLService orchestrates the pipeline: fetch, clean, enrich, project, write.
// Stages run strictly in order; a stage that produces no records halts the
// run with nothing written, which is a designed terminal state and not an
// error.
type ETLService struct {
	source    domain.RawRecordSource
	cleaner   *cleaner.Cleaner
	enricher  *enricher.Enricher
	projector *projector.Projector
	store     domain.TransactionStore
}

// NewETLService creates a new ETLService
func NewETLService(source domain.RawRecordSource, store domain.TransactionStore) *ETLService {
	return &ETLService{
		source:    source,
		cleaner:   cleaner.New(),
		enricher:  enricher.New(),
		projector: projector.New(),
		store:     store,
	}
}

// Run executes one pipeline pass over the given date range
func (s *ETLService) Run(ctx context.Context, startDate, endDate time.Time) (domain.RunReport, error) {
	started := time.Now()

	report := domain.RunReport{
		RunID:     uuid.NewString(),
		Source:    s.source.SourceIdentifier(),
		StartDate: startDate.Format(domain.DateFormat),
		EndDate:   endDate.Format(domain.DateFormat),
	}

	rawRecords, err := s.source.FetchRange(ctx, startDate, endDate)
	if err != nil {
		report.Duration = time.Since(started)
		return report, fmt.Errorf("fetching records: %w", err)
	}
	report.FetchedCount = len(rawRecords)
	if len(rawRecords) == 0 {
		report.StoppedAfter = domain.StageFetch
		report.Duration = time.Since(started)
		return report, nil
	}

	cleanRecords, cleaningReport := s.cleaner.Clean(rawRecords)
	report.Cleaning = cleaningReport
	if len(cleanRecords) == 0 {
		report.StoppedAfter = domain.StageClean
		report.Duration = time.Since(started)
		return report, nil
	}

	enrichedRecords := s.enricher.Enrich(cleanRecords)
	report.EnrichedCount = len(enrichedRecords)
	report.Sample = sample(enrichedRecords)

	sets, conflicts := s.projector.Project(enrichedRecords)
	report.ProductConflicts = conflicts
	if sets.Empty() {
		report.StoppedAfter = domain.StageProject
		report.Duration = time.Since(started)
		return report, nil
	}

	summary, err := s.store.SaveBatch(ctx, sets)
	if err != nil {
		report.Duration = time.Since(started)
		return report, fmt.Errorf("writing batch: %w", err)
	}
	report.Write = summary
	report.Duration = time.Since(started)

	return report, nil
}

func sample(records []domain.EnrichedRecord) []domain.EnrichedRecord {
	if len(records) <= sampleSize {
		return records
	}
	return records[:sampleSize]
}
