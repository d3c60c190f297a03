package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tirasundara/transaction-etl/internal/domain"
	"github.com/tirasundara/transaction-etl/internal/service"
)

type MockRecordSource struct {
	records []domain.RawRecord
	err     error
}

func (m *MockRecordSource) FetchRange(ctx context.Context, startDate, endDate time.Time) ([]domain.RawRecord, error) {
	return m.records, m.err
}

func (m *MockRecordSource) SourceIdentifier() string {
	return "mock-source"
}

type MockTransactionStore struct {
	saved []domain.EntitySets
	err   error
}

func (m *MockTransactionStore) SaveBatch(ctx context.Context, sets domain.EntitySets) (domain.WriteSummary, error) {
	if m.err != nil {
		return domain.WriteSummary{}, m.err
	}
	m.saved = append(m.saved, sets)
	return domain.WriteSummary{
		Customers:        len(sets.Customers),
		Products:         len(sets.Products),
		TransactionTypes: len(sets.TransactionTypes),
		SpendCategories:  len(sets.SpendCategories),
		AmountBands:      len(sets.AmountBands),
		Facts:            len(sets.Facts),
	}, nil
}

func (m *MockTransactionStore) Close() error {
	return nil
}

func rawRecord(customerID, date, amount string) domain.RawRecord {
	return domain.RawRecord{
		"customer_id":        customerID,
		"product_id":         "P1",
		"product_category":   "electronics",
		"transaction_date":   date,
		"transaction_amount": amount,
		"transaction_type":   "purchase",
		"spend_category":     "retail",
	}
}

func runDates(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start, _ := time.Parse("2006-01-02", "2023-01-01")
	end, _ := time.Parse("2006-01-02", "2023-01-31")
	return start, end
}

func TestRunCompletesFullPipeline(t *testing.T) {
	source := &MockRecordSource{records: []domain.RawRecord{
		rawRecord("C1", "2023-01-10", "30"),
		rawRecord("C1", "2023-01-12", "220"),
		rawRecord("C2", "2023-01-15", "75"),
	}}
	store := &MockTransactionStore{}

	etl := service.NewETLService(source, store)
	start, end := runDates(t)

	report, err := etl.Run(context.Background(), start, end)
	require.NoError(t, err)

	assert.True(t, report.Completed())
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "mock-source", report.Source)
	assert.Equal(t, 3, report.FetchedCount)
	assert.Equal(t, 3, report.Cleaning.OutputCount)
	assert.Equal(t, 3, report.EnrichedCount)
	assert.Len(t, report.Sample, 3)

	require.Len(t, store.saved, 1)
	sets := store.saved[0]
	assert.Len(t, sets.Customers, 2)
	assert.Len(t, sets.Facts, 3)
	assert.Equal(t, 3, report.Write.Facts)
	assert.Equal(t, 3, report.Write.AmountBands)
}

func TestRunStopsOnEmptyFetch(t *testing.T) {
	source := &MockRecordSource{records: nil}
	store := &MockTransactionStore{}

	etl := service.NewETLService(source, store)
	start, end := runDates(t)

	report, err := etl.Run(context.Background(), start, end)
	require.NoError(t, err)

	// Empty provider response halts the run with nothing written
	assert.Equal(t, domain.StageFetch, report.StoppedAfter)
	assert.False(t, report.Completed())
	assert.Empty(t, store.saved)
}

func TestRunStopsWhenNothingSurvivesCleaning(t *testing.T) {
	source := &MockRecordSource{records: []domain.RawRecord{
		rawRecord("C1", "2023-01-10", "-5"),
		rawRecord("C2", "2023-01-11", "not-a-number"),
	}}
	store := &MockTransactionStore{}

	etl := service.NewETLService(source, store)
	start, end := runDates(t)

	report, err := etl.Run(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, domain.StageClean, report.StoppedAfter)
	assert.Equal(t, 2, report.Cleaning.InputCount)
	assert.Equal(t, 0, report.Cleaning.OutputCount)
	assert.Empty(t, store.saved)
}

func TestRunPropagatesFetchFailure(t *testing.T) {
	source := &MockRecordSource{err: fmt.Errorf("provider returned status 500")}
	store := &MockTransactionStore{}

	etl := service.NewETLService(source, store)
	start, end := runDates(t)

	_, err := etl.Run(context.Background(), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching records")
	assert.Empty(t, store.saved)
}

func TestRunPropagatesWriteFailure(t *testing.T) {
	source := &MockRecordSource{records: []domain.RawRecord{
		rawRecord("C1", "2023-01-10", "30"),
	}}
	store := &MockTransactionStore{err: fmt.Errorf("deadlock detected")}

	etl := service.NewETLService(source, store)
	start, end := runDates(t)

	report, err := etl.Run(context.Background(), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing batch")
	assert.Equal(t, domain.WriteSummary{}, report.Write)
}

func TestRunSampleIsCapped(t *testing.T) {
	var records []domain.RawRecord
	for i := 0; i < 25; i++ {
		records = append(records, rawRecord(fmt.Sprintf("C%d", i), "2023-01-10", "10"))
	}
	source := &MockRecordSource{records: records}
	store := &MockTransactionStore{}

	etl := service.NewETLService(source, store)
	start, end := runDates(t)

	report, err := etl.Run(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, report.Sample, 10)
	assert.Equal(t, 25, report.EnrichedCount)
}
