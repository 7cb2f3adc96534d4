package sink

import (
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/cockroachdb/errors"

	"tracelog/pkg/fault"
)

// HTTP posts each formatted line to a remote collector URL.
type HTTP struct {
	url     string
	headers map[string]string
	client  *http.Client
}

func NewHTTP(url string, headers map[string]string) *HTTP {
	return &HTTP{
		url:     url,
		headers: headers,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (h *HTTP) Emit(level slog.Level, eventID int, message string, f fault.Fault) error {
	req, err := http.NewRequest(http.MethodPost, h.url, strings.NewReader(message))
	if err != nil {
		return errors.Wrap(err, "http sink: build request")
	}

	req.Header.Set("Content-Type", "text/plain")
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "http sink: post")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf("http sink failed with status: %d", resp.StatusCode)
	}
	return nil
}

func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
