package blackbox

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil { t.Fatalf("listen: %v", err) }
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil { t.Fatalf("split: %v", err) }
	cleanup := func(){ _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok { t.Fatal("runtime.Caller failed") }
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	root := filepath.Dir(filepath.Dir(bbDir))
	return root
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "matchd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/matchd")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// writeTempConfig writes a TOML config with fast timers so live events
// arrive within the test timeout.
func writeTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "matchd.toml")
	cfg := `match_duration_sec = 60
min_event_interval_sec = 1
max_event_interval_sec = 1
`
	if err := os.WriteFile(p, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write temp config %s: %v", p, err)
	}
	return p
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin string, cfgPath string, seed bool, port int) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args := []string{
		"--addr", addr,
		"--config", cfgPath,
	}
	if seed {
		args = append(args, "--seed")
	}
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK { break }
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func(){ _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil { t.Fatalf("new req: %v", err) }
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do: %v", err) }
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil { t.Fatalf("new req: %v", err) }
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("do: %v", err) }
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

type matchResp struct {
	ID     string `json:"id"`
	TeamA  string `json:"teamA"`
	TeamB  string `json:"teamB"`
	Status string `json:"status"`
}

func TestBlackbox_Flow(t *testing.T) {
	bin := buildBinary(t)
	cfgPath := writeTempConfig(t)
	// Reserve a free port, then release listener before starting the server
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, cfgPath, true, port)

	// /healthz
	resp, body := get(t, sp.base+"/healthz")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/healthz %d %s", resp.StatusCode, string(body)) }

	// /matches lists the seeded fixtures
	resp, body = get(t, sp.base+"/matches")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/matches %d %s", resp.StatusCode, string(body)) }
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") { t.Fatalf("/matches content-type=%s", ct) }
	var matches []matchResp
	if err := json.Unmarshal(body, &matches); err != nil { t.Fatalf("/matches json: %v body=%s", err, string(body)) }
	if len(matches) != 5 { t.Fatalf("expected 5 seeded matches, got %d", len(matches)) }

	// /readyz
	resp, body = get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusOK { t.Fatalf("/readyz %d %s", resp.StatusCode, string(body)) }

	// Create a new match
	resp, body = postJSON(t, sp.base+"/admin/matches", []byte(`{"teamA":"Walia Ibex","teamB":"Nile Crocs"}`))
	if resp.StatusCode != http.StatusCreated { t.Fatalf("create %d %s", resp.StatusCode, string(body)) }
	var m matchResp
	if err := json.Unmarshal(body, &m); err != nil { t.Fatalf("create json: %v body=%s", err, string(body)) }
	if m.ID == "" || m.Status != "scheduled" { t.Fatalf("unexpected created match: %+v", m) }

	// Start it
	resp, body = postJSON(t, sp.base+"/admin/matches/"+m.ID+"/start", nil)
	if resp.StatusCode != http.StatusOK { t.Fatalf("start %d %s", resp.StatusCode, string(body)) }

	// Starting again conflicts
	resp, body = postJSON(t, sp.base+"/admin/matches/"+m.ID+"/start", nil)
	if resp.StatusCode != http.StatusConflict { t.Fatalf("double start %d %s", resp.StatusCode, string(body)) }

	// History has the kick-off record
	resp, body = get(t, sp.base+"/matches/"+m.ID+"/events")
	if resp.StatusCode != http.StatusOK { t.Fatalf("events %d %s", resp.StatusCode, string(body)) }
	var events []map[string]any
	if err := json.Unmarshal(body, &events); err != nil { t.Fatalf("events json: %v body=%s", err, string(body)) }
	if len(events) < 1 || events[0]["type"] != "match_started" { t.Fatalf("expected match_started first, got %s", string(body)) }

	// SSE stream replays the history
	streamCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, sp.base+"/matches/"+m.ID+"/events/stream", nil)
	if err != nil { t.Fatalf("new stream req: %v", err) }
	streamResp, err := http.DefaultClient.Do(req)
	if err != nil { t.Fatalf("stream do: %v", err) }
	defer streamResp.Body.Close()
	if streamResp.StatusCode != http.StatusOK { t.Fatalf("stream %d", streamResp.StatusCode) }
	if ct := streamResp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") { t.Fatalf("stream content-type=%s", ct) }
	sc := bufio.NewScanner(streamResp.Body)
	var first map[string]any
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &first); err != nil {
			t.Fatalf("stream frame json: %v line=%q", err, line)
		}
		break
	}
	if first == nil || first["type"] != "match_started" {
		t.Fatalf("expected replayed match_started on stream, got %+v", first)
	}
	cancel()

	// Stop the match
	resp, body = postJSON(t, sp.base+"/admin/matches/"+m.ID+"/stop", nil)
	if resp.StatusCode != http.StatusNoContent { t.Fatalf("stop %d %s", resp.StatusCode, string(body)) }

	resp, body = get(t, sp.base+"/matches/"+m.ID)
	if resp.StatusCode != http.StatusOK { t.Fatalf("get match %d %s", resp.StatusCode, string(body)) }
	if err := json.Unmarshal(body, &m); err != nil { t.Fatalf("get match json: %v", err) }
	if m.Status != "ended" { t.Fatalf("expected ended after stop, got %q", m.Status) }
}

func TestBlackbox_UnknownMatch_404(t *testing.T) {
	bin := buildBinary(t)
	cfgPath := writeTempConfig(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, cfgPath, false, port)

	resp, body := postJSON(t, sp.base+"/admin/matches/no-such-id/start", nil)
	if resp.StatusCode != http.StatusNotFound { t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body)) }

	resp, body = get(t, sp.base+"/matches/no-such-id/events")
	if resp.StatusCode != http.StatusNotFound { t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body)) }
}

func TestBlackbox_Create_MissingTeams_400(t *testing.T) {
	bin := buildBinary(t)
	cfgPath := writeTempConfig(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, cfgPath, false, port)

	resp, body := postJSON(t, sp.base+"/admin/matches", []byte(`{"teamA":"Solo"}`))
	if resp.StatusCode != http.StatusBadRequest { t.Fatalf("expected 400, got %d, body=%s", resp.StatusCode, string(body)) }
}
