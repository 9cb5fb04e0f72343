package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/billy/internal/bill"
)

// Remote persists bills through the API server's /api/bills endpoint.
type Remote struct {
	baseURL string
	client  *http.Client
}

var _ Backend = (*Remote)(nil)

// NewRemote creates a Remote against the given base URL, e.g.
// "http://localhost:8080".
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type billsDocument struct {
	Bills []bill.Bill `json:"bills"`
}

func (r *Remote) Load(ctx context.Context) ([]bill.Bill, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/bills", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching bills: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from bills endpoint", resp.StatusCode)
	}

	var doc billsDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding bills response: %w", err)
	}

	return doc.Bills, nil
}

func (r *Remote) Save(ctx context.Context, bills []bill.Bill) error {
	body, err := json.Marshal(billsDocument{Bills: bills})
	if err != nil {
		return fmt.Errorf("encoding bills: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/bills", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting bills: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from bills endpoint", resp.StatusCode)
	}

	return nil
}
