package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

var pingClient = &http.Client{Timeout: 5 * time.Second}

// PingUntil polls the ping endpoint of baseURL every 100ms and calls
// callback once it responds. It gives up when ctx is done or after timeout.
func PingUntil(ctx context.Context, baseURL string, timeout time.Duration, callback func()) bool {
	pingURL := baseURL + "/api/ping"
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {

		case <-timer.C:
			log.Warnf("ping hits %s timeout", timeout)
			return false

		case <-ctx.Done():
			return false

		case <-ticker.C:
			var response map[string]interface{}
			if err := getJSON(ctx, pingURL, &response); err == nil {
				callback()
				return true
			}
		}
	}
}

func getJSON(ctx context.Context, url string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := pingClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(data)
}
