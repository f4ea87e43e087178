package matchctl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"matchd/pkg/types"
)

// Client is a thin wrapper over the matchd HTTP API.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var er types.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&er) == nil && er.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, er.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) CreateMatch(teamA, teamB string) (types.Match, error) {
	var m types.Match
	err := c.do(http.MethodPost, "/admin/matches", types.CreateMatchRequest{TeamA: teamA, TeamB: teamB}, &m)
	return m, err
}

func (c *Client) Seed() ([]types.Match, error) {
	var ms []types.Match
	err := c.do(http.MethodPost, "/admin/seed", nil, &ms)
	return ms, err
}

func (c *Client) StartMatch(id string) (types.Match, error) {
	var m types.Match
	err := c.do(http.MethodPost, "/admin/matches/"+id+"/start", nil, &m)
	return m, err
}

func (c *Client) StopMatch(id string) error {
	return c.do(http.MethodPost, "/admin/matches/"+id+"/stop", nil, nil)
}

func (c *Client) ListMatches() ([]types.Match, error) {
	var ms []types.Match
	err := c.do(http.MethodGet, "/matches", nil, &ms)
	return ms, err
}

func (c *Client) GetMatch(id string) (types.Match, error) {
	var m types.Match
	err := c.do(http.MethodGet, "/matches/"+id, nil, &m)
	return m, err
}

func (c *Client) MatchEvents(id string) ([]types.MatchEvent, error) {
	var evs []types.MatchEvent
	err := c.do(http.MethodGet, "/matches/"+id+"/events", nil, &evs)
	return evs, err
}

// Watch follows a match's SSE stream and calls fn for every event until the
// stream ends or fn returns an error.
func (c *Client) Watch(id string, fn func(types.MatchEvent) error) error {
	resp, err := http.Get(c.base + "/matches/" + id + "/events/stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream: status %d", resp.StatusCode)
	}
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev types.MatchEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
	return sc.Err()
}
