package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/tirasundara/transaction-etl/internal/domain"
)

const apiKeyHeader = "x-api-key"

// APISource implements the RawRecordSource interface against the HTTP record
// provider. One request per run, no retries: any transport, auth, or non-2xx
// failure is fatal to the run.
type APISource struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewAPISource creates an APISource for the given endpoint
func NewAPISource(endpoint, apiKey string, timeout time.Duration) *APISource {
	return &APISource{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// SourceIdentifier returns the provider host as the record source name
func (s *APISource) SourceIdentifier() string {
	if u, err := url.Parse(s.endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return s.endpoint
}

type fetchRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FetchRange issues one POST to the provider and decodes the returned JSON
// array into raw records.
func (s *APISource) FetchRange(ctx context.Context, startDate, endDate time.Time) ([]domain.RawRecord, error) {
	body, err := json.Marshal(fetchRequest{
		StartDate: startDate.Format(domain.DateFormat),
		EndDate:   endDate.Format(domain.DateFormat),
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding provider request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building provider request")
	}
	req.Header.Set(apiKeyHeader, s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "calling record provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("record provider returned status %d", resp.StatusCode)
	}

	// UseNumber keeps numeric identifiers intact instead of forcing float64
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var records []domain.RawRecord
	if err := decoder.Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decoding provider response")
	}

	return records, nil
}
