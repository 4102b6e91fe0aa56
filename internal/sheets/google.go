package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// GoogleConfig configures the Google Sheets backend. Exactly one credential
// path must resolve: either ServiceAccountEnv names an environment variable
// holding a service account JSON blob, or CredentialsFile/TokenFile point at
// an OAuth client secret and its cached user token.
type GoogleConfig struct {
	SpreadsheetID     string `json:"spreadsheetId"`
	SheetName         string `json:"sheetName"`
	CredentialsFile   string `json:"credentialsFile"`
	TokenFile         string `json:"tokenFile"`
	ServiceAccountEnv string `json:"serviceAccountEnv"`
}

// Google reads and writes one sheet of one spreadsheet through the Sheets
// API. It implements Source and Sink.
type Google struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	sheetName     string
}

// NewGoogle authenticates and returns a ready client.
func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	if cfg.SpreadsheetID == "" || cfg.SheetName == "" {
		return nil, fmt.Errorf("spreadsheetId and sheetName are required")
	}

	var opts []option.ClientOption
	if cfg.ServiceAccountEnv != "" && os.Getenv(cfg.ServiceAccountEnv) != "" {
		creds, err := google.CredentialsFromJSON(ctx, []byte(os.Getenv(cfg.ServiceAccountEnv)), spreadsheetScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	} else {
		client, err := userClient(ctx, cfg.CredentialsFile, cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(client))
	}

	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Google{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

// userClient builds an HTTP client from an OAuth client secret file and a
// cached token file. An expired token refreshes transparently through the
// token source; the refreshed token is persisted back for the next run.
func userClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret %s: %w", credentialsFile, err)
	}
	conf, err := google.ConfigFromJSON(secret, spreadsheetScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = tokenFromPrompt(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, fmt.Errorf("failed to cache token %s: %w", tokenFile, err)
		}
	}
	src := conf.TokenSource(ctx, tok)

	// Persist whatever the source holds after a possible refresh.
	if fresh, err := src.Token(); err == nil && fresh.AccessToken != tok.AccessToken {
		_ = saveToken(tokenFile, fresh)
	} else if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	return oauth2.NewClient(ctx, src), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	return tok, json.NewDecoder(f).Decode(tok)
}

// tokenFromPrompt walks the user through the installed-app flow on first
// run: print the consent URL, read the code back from stdin.
func tokenFromPrompt(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	url := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open the following link in your browser, then paste the authorization code:\n%s\n> ", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}
	tok, err := conf.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// Read fetches keyRange (and optionally checkRange) and pairs them up by
// original row number, dropping blank keys.
func (g *Google) Read(ctx context.Context, keyRange, checkRange string) ([]InputRow, error) {
	_, startRow, _, err := ParseColumnRange(keyRange)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	keys, err := g.readColumn(ctx, keyRange)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var checks []string
	if checkRange != "" {
		checks, err = g.readColumn(ctx, checkRange)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
	}

	return pairRows(keys, checks, startRow), nil
}

func (g *Google) readColumn(ctx context.Context, rng string) ([]string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(g.spreadsheetID, fmt.Sprintf("%s!%s", g.sheetName, rng)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}
	values := make([]string, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) > 0 {
			values[i] = fmt.Sprint(row[0])
		}
	}
	return values, nil
}

// Write coalesces all cells into a single batched RAW update.
func (g *Google) Write(ctx context.Context, cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}
	data := make([]*sheetsv4.ValueRange, 0, len(cells))
	for _, c := range cells {
		data = append(data, &sheetsv4.ValueRange{
			Range:  fmt.Sprintf("%s!%s", g.sheetName, CellRef(c.Column, c.Row)),
			Values: [][]interface{}{{c.Value}},
		})
	}
	_, err := g.svc.Spreadsheets.Values.BatchUpdate(g.spreadsheetID, &sheetsv4.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return nil
}

// pairRows zips key and check columns into InputRows, preserving original
// row numbers and skipping blank keys. The check column is padded to the
// key column's length.
func pairRows(keys, checks []string, startRow int) []InputRow {
	rows := make([]InputRow, 0, len(keys))
	for i, key := range keys {
		if strings.TrimSpace(key) == "" {
			continue
		}
		row := InputRow{Index: startRow + i, Key: strings.TrimSpace(key)}
		if i < len(checks) {
			row.Check = strings.TrimSpace(checks[i])
		}
		rows = append(rows, row)
	}
	return rows
}
