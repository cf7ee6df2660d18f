package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HuggingFaceClient talks JSON to self-hosted model services (sentiment, NER,
// transcription) exposed over HTTP.
type HuggingFaceClient struct {
	Client      *http.Client
	maxAttempts int
}

func NewHuggingFaceClient(timeout time.Duration, maxAttempts int) *HuggingFaceClient {
	if maxAttempts < 1 {
		maxAttempts = DEFAULT_MAX_ATTEMPTS
	}
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", timeout),
		slog.Int("max_attempts", maxAttempts))

	return &HuggingFaceClient{
		Client:      &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
	}
}

// Do sends req, repeating on transport errors and 5xx responses until
// maxAttempts is reached. The default of one attempt means no retries.
// Requests with a body must set GetBody so it can be replayed.
func (h *HuggingFaceClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < h.maxAttempts; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, bodyErr
				}
				req.Body = body
			}

			slog.Warn("[HuggingFaceClient] Request failed, will retry",
				slog.Int("attempt", attempt),
				slog.String("error", errMsg(err, resp)))

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if resp != nil && attempt < h.maxAttempts-1 {
			resp.Body.Close()
		}
	}

	return resp, err
}

// PostJSON posts input as JSON to endpoint and decodes the response into output.
func (h *HuggingFaceClient) PostJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return h.send(req, output)
}

// PostMultipart posts a prepared multipart body and decodes the JSON response.
func (h *HuggingFaceClient) PostMultipart(ctx context.Context, endpoint, contentType string, body []byte, output interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return h.send(req, output)
}

// HealthCheck reports whether a GET on url answers with 2xx.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (h *HuggingFaceClient) send(req *http.Request, output interface{}) error {
	endpoint := req.URL.String()
	req.Header.Set("User-Agent", USER_AGENT)
	start := time.Now()

	resp, err := h.Do(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Request failed",
			slog.String("endpoint", endpoint),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("[HuggingFaceClient] Unexpected status",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("%s: %s", resp.Status, string(respBody))
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	slog.Debug("[HuggingFaceClient] Request successful",
		slog.String("endpoint", endpoint),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
