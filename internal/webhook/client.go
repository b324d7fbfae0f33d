package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// UserAgent identifies the dashboard to the automation platform.
const UserAgent = "GHL-Dashboard-v2"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// HTTPError is a non-2xx upstream answer with its status and captured body,
// surfaced to the user as the failure details.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("webhook responded with status: %d - %s", e.Status, e.Body)
}

// PostJSON sends payload to url and decodes the JSON answer into dst.
func PostJSON(ctx context.Context, c HTTPClient, url string, payload any, dst any) error {
	if url == "" {
		return errors.New("empty webhook url")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPError{Status: resp.StatusCode, Body: string(b)}
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// PostJSONWithRetry retries transport failures and non-2xx answers with
// exponential backoff plus jitter. The context bounds the whole sequence.
func PostJSONWithRetry(ctx context.Context, c HTTPClient, url string, payload any, dst any, retries int) error {
	var lastErr error
	for i := 0; i <= retries; i++ {
		lastErr = PostJSON(ctx, c, url, payload, dst)
		if lastErr == nil {
			return nil
		}
		if i == retries {
			break
		}
		sleep := time.Duration(1<<i)*100*time.Millisecond + jitter(150*time.Millisecond)
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(sleep):
		}
	}
	return lastErr
}

func jitter(max time.Duration) time.Duration {
	return time.Duration(rand.Int63n(int64(max)))
}
