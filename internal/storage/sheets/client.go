// Package sheets stores the table in a Google Sheets spreadsheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	sheetsAPIBaseURL = "https://sheets.googleapis.com/v4"
)

// Client is a minimal Google Sheets API v4 client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. httpClient must attach credentials, e.g. one
// built by golang.org/x/oauth2. baseURL may be empty for the public API.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = sheetsAPIBaseURL
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SheetProperties describes one worksheet.
type SheetProperties struct {
	SheetID        int64          `json:"sheetId"`
	Title          string         `json:"title"`
	Index          int            `json:"index"`
	GridProperties GridProperties `json:"gridProperties"`
}

// GridProperties is the size of a worksheet.
type GridProperties struct {
	RowCount    int `json:"rowCount,omitempty"`
	ColumnCount int `json:"columnCount,omitempty"`
}

// ValueRange is a block of cell values.
type ValueRange struct {
	Range          string  `json:"range,omitempty"`
	MajorDimension string  `json:"majorDimension,omitempty"`
	Values         [][]any `json:"values"`
}

// Worksheets lists the worksheets of a spreadsheet in tab order.
func (c *Client) Worksheets(ctx context.Context, spreadsheetID string) ([]SheetProperties, error) {
	params := url.Values{}
	params.Set("fields", "sheets.properties")

	var resp struct {
		Sheets []struct {
			Properties SheetProperties `json:"properties"`
		} `json:"sheets"`
	}
	if err := c.do(ctx, http.MethodGet, spreadsheetPath(spreadsheetID), params, nil, &resp); err != nil {
		return nil, err
	}

	sheets := make([]SheetProperties, len(resp.Sheets))
	for i, s := range resp.Sheets {
		sheets[i] = s.Properties
	}
	return sheets, nil
}

// GetValues reads every value of a worksheet, unformatted.
func (c *Client) GetValues(ctx context.Context, spreadsheetID, title string) ([][]any, error) {
	params := url.Values{}
	params.Set("valueRenderOption", "UNFORMATTED_VALUE")
	params.Set("majorDimension", "ROWS")

	var vr ValueRange
	if err := c.do(ctx, http.MethodGet, valuesPath(spreadsheetID, quoteTitle(title)), params, nil, &vr); err != nil {
		return nil, err
	}
	return vr.Values, nil
}

// ClearValues empties an A1 range, keeping its formatting.
func (c *Client) ClearValues(ctx context.Context, spreadsheetID, rng string) error {
	return c.do(ctx, http.MethodPost, valuesPath(spreadsheetID, rng)+":clear", nil, struct{}{}, nil)
}

// UpdateValues writes values starting at A1 of a worksheet. Values are
// stored as given (RAW), so numbers must be sent as JSON numbers.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, title string, values [][]any) error {
	rng := quoteTitle(title) + "!A1"
	params := url.Values{}
	params.Set("valueInputOption", "RAW")

	body := ValueRange{Range: rng, MajorDimension: "ROWS", Values: values}
	return c.do(ctx, http.MethodPut, valuesPath(spreadsheetID, rng), params, body, nil)
}

// AddWorksheet creates a worksheet with the given title and size.
func (c *Client) AddWorksheet(ctx context.Context, spreadsheetID, title string, grid GridProperties) error {
	body := map[string]any{
		"requests": []any{
			map[string]any{
				"addSheet": map[string]any{
					"properties": SheetProperties{Title: title, GridProperties: grid},
				},
			},
		},
	}
	return c.do(ctx, http.MethodPost, spreadsheetPath(spreadsheetID)+":batchUpdate", nil, body, nil)
}

func spreadsheetPath(id string) string {
	return "spreadsheets/" + url.PathEscape(id)
}

func valuesPath(id, rng string) string {
	return spreadsheetPath(id) + "/values/" + url.PathEscape(rng)
}

// quoteTitle turns a worksheet title into an A1 range that covers the sheet.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// columnName converts a 1-based column number to its A1 letters.
func columnName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// boxRange is the A1 range from (col1, row1) to (col2, row2), 1-based.
func boxRange(title string, col1, row1, col2, row2 int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", quoteTitle(title), columnName(col1), row1, columnName(col2), row2)
}

// APIError is a non-2xx response from the Sheets API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sheets API error %d: %s", e.StatusCode, e.Body)
}

// do performs a request against the Sheets API and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body, result any) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
