package domain

import "time"

// Pipeline stage names, as recorded in a RunReport when a stage produces no
// records and the run stops early.
const (
	StageFetch   = "fetch"
	StageClean   = "clean"
	StageEnrich  = "enrich"
	StageProject = "project"
	StageWrite   = "write"
)

// CleaningReport contains the per-rule drop counts of one cleaning pass
type CleaningReport struct {
	InputCount             int
	MissingCriticalDropped int
	BadDateDropped         int
	DuplicatesRemoved      int
	MissingAmountDropped   int
	NegativeAmountDropped  int
	OutputCount            int
}

// Dropped returns the total number of records eliminated by cleaning
func (r CleaningReport) Dropped() int {
	return r.InputCount - r.OutputCount
}

// WriteSummary contains per-entity processed counts of one successful write
type WriteSummary struct {
	Customers        int
	Products         int
	TransactionTypes int
	SpendCategories  int
	AmountBands      int
	Facts            int
}

// RunReport contains the result of one pipeline run
type RunReport struct {
	RunID     string
	Source    string
	StartDate string
	EndDate   string

	FetchedCount     int
	Cleaning         CleaningReport
	EnrichedCount    int
	ProductConflicts int
	Write            WriteSummary

	// Sample holds up to the first few enriched records for console preview
	Sample []EnrichedRecord

	// StoppedAfter names the stage that produced no records, if the run
	// ended early with nothing written. Empty for a completed run.
	StoppedAfter string

	Duration time.Duration
}

// Completed reports whether the run reached a committed write
func (r RunReport) Completed() bool {
	return r.StoppedAfter == ""
}
