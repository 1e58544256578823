package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cardtrack/internal/core"
	ports "cardtrack/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads and writes the "cards" and "tx" worksheets of one
// spreadsheet. It is constructed once per process and passed down; the
// Sheets service handle is the long-lived resource.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	cardsSheet    string
	txSheet       string
}

// Ensure interface conformance
var (
	_ ports.CardStore        = (*Client)(nil)
	_ ports.TransactionStore = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional sheet names: GOOGLE_CARDS_SHEET_NAME (default "cards"),
// GOOGLE_TX_SHEET_NAME (default "tx").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	cardsSheet := strings.TrimSpace(os.Getenv("GOOGLE_CARDS_SHEET_NAME"))
	if cardsSheet == "" {
		cardsSheet = "cards"
	}
	txSheet := strings.TrimSpace(os.Getenv("GOOGLE_TX_SHEET_NAME"))
	if txSheet == "" {
		txSheet = "tx"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		cardsSheet:    cardsSheet,
		txSheet:       txSheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// readRecords fetches the whole sheet and returns one field map per data
// row, keyed by the header row. An empty sheet is an empty table.
func (c *Client) readRecords(ctx context.Context, sheetName string) ([]record, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheetName, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	header := toStrings(resp.Values[0])
	records := make([]record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		cols := toStrings(row)
		if allEmpty(cols) {
			continue
		}
		rec := record{}
		for i, name := range header {
			if i < len(cols) {
				rec[name] = cols[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) appendRow(ctx context.Context, sheetName string, row []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheetName+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheetName, err)
	}
	return nil
}

// replaceAll clears the sheet and writes header plus rows back in a single
// update. Full-table overwrite is the only edit primitive the store offers,
// so last write wins across concurrent operators.
func (c *Client) replaceAll(ctx context.Context, sheetName string, header []string, rows [][]any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheetName, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", sheetName, err)
	}
	values := make([][]any, 0, len(rows)+1)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	values = append(values, headerRow)
	values = append(values, rows...)
	vr := &gsheet.ValueRange{Values: values}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheetName+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("overwrite %s: %w", sheetName, err)
	}
	slog.InfoContext(ctx, "Sheet overwritten", "sheet", sheetName, "rows", len(rows))
	return nil
}

func (c *Client) ListCards(ctx context.Context) ([]core.Card, error) {
	records, err := c.readRecords(ctx, c.cardsSheet)
	if err != nil {
		return nil, err
	}
	cards := make([]core.Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, parseCard(rec))
	}
	return cards, nil
}

func (c *Client) AppendCard(ctx context.Context, card core.Card) error {
	return c.appendRow(ctx, c.cardsSheet, cardRow(card))
}

func (c *Client) ReplaceAllCards(ctx context.Context, cards []core.Card) error {
	rows := make([][]any, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, cardRow(card))
	}
	return c.replaceAll(ctx, c.cardsSheet, cardsHeader, rows)
}

func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	records, err := c.readRecords(ctx, c.txSheet)
	if err != nil {
		return nil, err
	}
	txs := make([]core.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, parseTransaction(rec))
	}
	return txs, nil
}

func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) error {
	return c.appendRow(ctx, c.txSheet, transactionRow(t))
}

func (c *Client) ReplaceAllTransactions(ctx context.Context, txs []core.Transaction) error {
	rows := make([][]any, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, transactionRow(t))
	}
	return c.replaceAll(ctx, c.txSheet, txHeader, rows)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func allEmpty(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}
