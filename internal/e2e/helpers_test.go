package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"matchd/internal/engine"
	"matchd/internal/httpapi"
	"matchd/internal/hub"
	"matchd/internal/store"
)

// newServerWithConfig wires a store, engine and hub behind a test HTTP
// server, mirroring the production wiring in cmd/matchd.
func newServerWithConfig(t *testing.T, cfg engine.Config) (*httptest.Server, *engine.Engine) {
	t.Helper()
	st := store.New()
	cfg.Store = st
	logger := zerolog.Nop()
	cfg.Logger = &logger
	eng := engine.New(cfg)
	h := hub.New(st, logger)
	eng.SetPublisher(h)
	mux := httpapi.NewMux(eng, h)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		eng.Close()
		h.Close()
	})
	return srv, eng
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil { t.Fatalf("new req: %v", err) }
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do req: %v", err) }
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil { t.Fatalf("new req: %v", err) }
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do req: %v", err) }
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

// collectStream follows the SSE endpoint for matchID and returns the decoded
// events in arrival order, until stop returns true for an event or the
// timeout elapses.
func collectStream(t *testing.T, base, matchID string, timeout time.Duration, stop func(map[string]any) bool) []map[string]any {
	t.Helper()
	events, err := followStream(base, matchID, timeout, stop)
	if err != nil {
		t.Fatalf("follow stream: %v", err)
	}
	return events
}

// followStream is the goroutine-safe core of collectStream.
func followStream(base, matchID string, timeout time.Duration, stop func(map[string]any) bool) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/matches/"+matchID+"/events/stream", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stream status=%d", resp.StatusCode)
	}

	var events []map[string]any
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev map[string]any
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			return nil, fmt.Errorf("stream frame %q: %w", line, err)
		}
		events = append(events, ev)
		if stop(ev) {
			break
		}
	}
	return events, nil
}
