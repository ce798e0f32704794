package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/sarkop/opname/internal/config"
	"github.com/sarkop/opname/internal/domain"
)

// ErrNotConfigured signals missing spreadsheet identifiers. This is a
// configuration error: fatal to the calling operation, never retried.
var ErrNotConfigured = errors.New("spreadsheet access is not configured")

// Service reads value ranges from the configured Google Sheet. It
// authenticates with a service-account JWT when credentials JSON is
// provided, or falls back to a plain API key for public sheets.
type Service struct {
	srv           *sheetsapi.Service
	spreadsheetID string
}

func NewService(ctx context.Context, cfg config.SheetsConfig) (*Service, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: missing sheet ID", ErrNotConfigured)
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		jwt, err := google.JWTConfigFromJSON(
			[]byte(cfg.CredentialsJSON),
			sheetsapi.SpreadsheetsReadonlyScope,
		)
		if err != nil {
			return nil, fmt.Errorf("unable to parse sheet credentials: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(jwt.Client(ctx)))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		return nil, fmt.Errorf("%w: neither credentials JSON nor API key set", ErrNotConfigured)
	}

	srv, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to build sheets client: %w", err)
	}

	return &Service{srv: srv, spreadsheetID: cfg.SpreadsheetID}, nil
}

// ReadRange fetches one A1 range as a header/rows table. Cells come back
// untyped from the API and are rendered to strings; nil cells become empty
// strings. A sheet with no values or only a header row yields an empty
// table, not an error. Provider failures carry the HTTP status in the
// message; the caller must re-trigger, there is no automatic retry.
func (s *Service) ReadRange(ctx context.Context, a1Range string) (domain.Table, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return domain.Table{}, fmt.Errorf("failed to fetch range %q, status %d: %w", a1Range, gerr.Code, err)
		}

		return domain.Table{}, fmt.Errorf("failed to fetch range %q: %w", a1Range, err)
	}

	if len(resp.Values) < 2 {
		return domain.Table{}, nil
	}

	table := domain.Table{
		Header: toStrings(resp.Values[0]),
		Rows:   make([][]string, 0, len(resp.Values)-1),
	}
	for _, row := range resp.Values[1:] {
		table.Rows = append(table.Rows, toStrings(row))
	}

	return table, nil
}

func toStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		out[i] = fmt.Sprint(c)
	}

	return out
}
