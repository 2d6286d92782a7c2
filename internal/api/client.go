package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/logging"
)

const DefaultBaseURL = "http://localhost:8000"

const (
	opRequest = "API Error"
	opUpload  = "Upload failed"
)

// Error is returned for any non-2xx response.
type Error struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, e.Status)
}

// File is an upload source. ContentType is the declared type, which may be empty.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	Message          string         `json:"message"`
	ContractID       string         `json:"contract_id,omitempty"`
	TaskID           string         `json:"task_id,omitempty"`
	Status           string         `json:"status,omitempty"`
	ProcessingStatus string         `json:"processing_status,omitempty"`
	FileInfo         map[string]any `json:"file_info,omitempty"`
}

// Client talks to the revenue-recognition backend. It never retries.
type Client struct {
	baseURL string
	client  *http.Client
	headers http.Header
}

// New creates a Client. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		headers: headers,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) UploadContract(ctx context.Context, f File) (*UploadResult, error) {
	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	part, err := w.CreatePart(filePartHeader(f))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, f.Body); err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	var result UploadResult

	headers := http.Header{}
	headers.Set("Content-Type", w.FormDataContentType())

	if err := c.do(ctx, http.MethodPost, "/contracts/upload", &body, headers, opUpload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) ListContracts(ctx context.Context) ([]contract.Contract, error) {
	var out []contract.Contract
	if err := c.get(ctx, "/contracts", &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetContract(ctx context.Context, ref string) (*contract.Contract, error) {
	var out contract.Contract
	if err := c.get(ctx, contractPath(ref, ""), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListRevenueSchedules(ctx context.Context, ref string) ([]contract.RevenueScheduleEntry, error) {
	var out []contract.RevenueScheduleEntry
	if err := c.get(ctx, contractPath(ref, "revenue-schedules"), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ListAuditMemos(ctx context.Context, ref string) ([]contract.AuditMemo, error) {
	var out []contract.AuditMemo
	if err := c.get(ctx, contractPath(ref, "audit-memos"), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetStructuredMemo(ctx context.Context, ref string) (*contract.StructuredAuditMemo, error) {
	var out contract.StructuredAuditMemo
	if err := c.get(ctx, contractPath(ref, "audit-memos/structured"), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Health is the backend's self-report.
type Health struct {
	Message     string   `json:"message"`
	Status      string   `json:"status"`
	CORSEnabled bool     `json:"cors_enabled"`
	Endpoints   []string `json:"endpoints,omitempty"`
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GetContractStatus(ctx context.Context, ref string) (*contract.ContractStatus, error) {
	var out contract.ContractStatus
	if err := c.get(ctx, contractPath(ref, "status"), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, opRequest, out)
}

// do is the single request primitive. Per-call headers override the defaults.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, headers http.Header, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	for k, v := range c.headers {
		req.Header[k] = v
	}

	for k, v := range headers {
		req.Header[k] = v
	}

	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = logging.WithRequestID(ctx, requestID)
	}

	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	logging.FromContext(ctx).Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, StatusCode: resp.StatusCode, Status: reasonPhrase(resp)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

func contractPath(ref, sub string) string {
	p := "/contracts/" + url.PathEscape(ref)
	if sub != "" {
		p += "/" + sub
	}

	return p
}

// reasonPhrase strips the numeric code from resp.Status ("404 Not Found").
func reasonPhrase(resp *http.Response) string {
	if reason, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); ok && reason != "" {
		return reason
	}

	return http.StatusText(resp.StatusCode)
}

func filePartHeader(f File) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(f.Name)))

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.Set("Content-Type", contentType)

	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
