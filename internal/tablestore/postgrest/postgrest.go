// Package postgrest implements tablestore.Store against a hosted Supabase
// project through its PostgREST endpoint.
package postgrest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"house_management/internal/domain"
	"house_management/internal/tablestore"
)

// DefaultSchema is the Postgres schema holding the console tables.
const DefaultSchema = "House-Management"

var _ tablestore.Store = (*Store)(nil)

// Configured reports whether url looks like a real Supabase project URL.
// The check is on the URL shape only; no request is made.
func Configured(url string) bool {
	return url != "" && strings.Contains(url, "supabase.co") && !strings.Contains(url, "your-project-id")
}

// Store talks to /rest/v1/<table>.
type Store struct {
	client *resty.Client
	schema string
}

// Option tweaks the underlying resty client.
type Option func(*resty.Client)

// WithTimeout overrides the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithRetry sets resty's transport level retries.
func WithRetry(count int, wait time.Duration) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(count).SetRetryWaitTime(wait).SetRetryMaxWaitTime(4 * wait)
	}
}

// New creates a store for the project at baseURL using the anon or service key.
func New(baseURL, apiKey, schema string, opts ...Option) *Store {
	if schema == "" {
		schema = DefaultSchema
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetTimeout(15*time.Second).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(client)
	}
	return &Store{client: client, schema: schema}
}

// SelectAll issues GET /<table>?select=*.
func (s *Store) SelectAll(ctx context.Context, table string, dest any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept-Profile", s.schema).
		SetQueryParam("select", "*").
		SetResult(dest).
		ForceContentType("application/json").
		Get("/" + table)
	if err != nil {
		return fmt.Errorf("failed to select %s: %w", table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to select %s: %s: %s", table, resp.Status(), resp.String())
	}
	return nil
}

// Upsert issues POST /<table>?on_conflict=id with merge-duplicates resolution.
func (s *Store) Upsert(ctx context.Context, rec domain.Record) error {
	table := rec.TableName()
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Profile", s.schema).
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", "id").
		SetBody(rec).
		Post("/" + table)
	if err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", table, rec.RecordID(), err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to upsert %s %s: %s: %s", table, rec.RecordID(), resp.Status(), resp.String())
	}
	return nil
}

// Delete issues DELETE /<table>?id=eq.<id>.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Profile", s.schema).
		SetQueryParam("id", "eq."+id).
		Delete("/" + table)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", table, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to delete %s %s: %s: %s", table, id, resp.Status(), resp.String())
	}
	return nil
}
