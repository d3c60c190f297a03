package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/tirasundara/transaction-etl/internal/config"
	"github.com/tirasundara/transaction-etl/internal/domain"
	"github.com/tirasundara/transaction-etl/internal/report"
	"github.com/tirasundara/transaction-etl/internal/repository"
	"github.com/tirasundara/transaction-etl/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid configuration: %v", err))
	}

	// Pick the record source
	var source domain.RawRecordSource
	if cfg.Provider.CSVFile != "" {
		source = repository.NewCSVSource(cfg.Provider.CSVFile, "")
	} else {
		source = repository.NewAPISource(cfg.Provider.URL, cfg.Provider.APIKey, cfg.Provider.Timeout)
	}

	store, err := repository.NewPostgresStore(cfg.Database)
	if err != nil {
		exitWithError(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer store.Close()

	etlService := service.NewETLService(source, store)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.Timeout)
	defer cancel()

	fmt.Printf("Fetching records from %s for %s .. %s\n",
		source.SourceIdentifier(),
		cfg.Run.StartDate.Format(domain.DateFormat),
		cfg.Run.EndDate.Format(domain.DateFormat))

	runReport, err := etlService.Run(ctx, cfg.Run.StartDate, cfg.Run.EndDate)
	if err != nil {
		exitWithError(fmt.Sprintf("Pipeline run failed: %v", err))
	}

	var formatter report.OutputFormatter
	switch cfg.Run.ReportFormat {
	case "json":
		formatter = report.NewJSONFormatter(true)
	default:
		formatter = report.NewTextFormatter()
	}

	output, err := formatter.Format(runReport)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to format run report: %v", err))
	}

	fmt.Println(string(output))
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	os.Exit(1)
}
