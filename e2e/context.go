package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TestContext carries the HTTP client and the last exchange across the steps
// of one scenario.
type TestContext struct {
	BaseURL string
	client  *http.Client

	forwardedFor string
	lastStatus   int
	lastHeader   http.Header
	lastBody     []byte
}

// NewTestContext returns a context talking to the server at baseURL.
func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.forwardedFor = ""
	tc.lastStatus = 0
	tc.lastHeader = nil
	tc.lastBody = nil
}

// SetClientIP makes subsequent requests claim to come from ip.
func (tc *TestContext) SetClientIP(ip string) {
	tc.forwardedFor = ip
}

// POST sends body as JSON.
func (tc *TestContext) POST(path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(payload), map[string]string{"Content-Type": "application/json"})
}

// POSTRaw sends body verbatim, for malformed payloads.
func (tc *TestContext) POSTRaw(path, body string) error {
	return tc.do(http.MethodPost, path, strings.NewReader(body), map[string]string{"Content-Type": "application/json"})
}

// GET fetches path.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) do(method, path string, body io.Reader, headers map[string]string) error {
	req, err := http.NewRequest(method, tc.BaseURL+path, body)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if tc.forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", tc.forwardedFor)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastHeader = resp.Header
	tc.lastBody = data
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.lastHeader == nil {
		return ""
	}
	return tc.lastHeader.Get(name)
}

// GetResponseField resolves a dotted path such as "results.1.error" against
// the last JSON body. Numeric segments index into arrays.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	cur := doc
	for _, seg := range strings.Split(field, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response", field)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", seg, field)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("field %q not found in response", field)
		}
	}
	return cur, nil
}
