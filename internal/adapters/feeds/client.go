// internal/adapters/feeds/client.go
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	mxj "github.com/clbanning/mxj/v2"
	"golang.org/x/time/rate"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

const userAgent = "NewBuildHomes/1.0"

// maxPayloadBytes bounds how much of a feed body we will read; upstream
// feeds run to a few MB, anything past this is a broken export.
const maxPayloadBytes = 64 << 20

var (
	ErrBadStatus   = errors.New("feeds: non-success response")
	ErrEmptyFeed   = errors.New("feeds: no recognizable records in payload")
	ErrBadEndpoint = errors.New("feeds: source has no endpoint")
)

// Client fetches one source's payload and decodes it into loosely-typed
// records. There are no retries: the next cache-expiry pass is the retry
// mechanism, per source failures stay isolated to that pass.
type Client struct {
	hc *http.Client
	rl *rate.Limiter
}

func New(timeout time.Duration, rps int) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc: &http.Client{Timeout: timeout},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) Fetch(ctx context.Context, src domain.FeedSource) ([]map[string]any, error) {
	if src.Endpoint == "" {
		return nil, ErrBadEndpoint
	}

	// client-side rate limiting across sources sharing this client
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if src.Format == "json" {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "application/xml, text/xml")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, src.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, err
	}

	if src.Format == "json" {
		return DecodeJSON(body)
	}
	return DecodeXML(body)
}

// DecodeXML parses a feed payload into records without a fixed schema.
// The repeated element is conventionally inmueble or property, wrapped
// in a root container or sitting at the top level.
func DecodeXML(body []byte) ([]map[string]any, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := map[string]any(m)

	// unwrap the conventional containers first
	for _, container := range []string{"inmuebles", "properties", "root"} {
		if inner, ok := root[container].(map[string]any); ok {
			root = inner
			break
		}
	}

	for _, item := range []string{"inmueble", "property", "listing"} {
		if v, ok := root[item]; ok {
			return asRecordList(v), nil
		}
	}
	return nil, ErrEmptyFeed
}

// DecodeJSON accepts either a bare array of records or an object
// wrapping the array under a conventional key.
func DecodeJSON(body []byte) ([]map[string]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	switch t := v.(type) {
	case []any:
		return asRecordList(t), nil
	case map[string]any:
		for _, key := range []string{"properties", "inmuebles", "listings", "items"} {
			if inner, ok := t[key]; ok {
				return asRecordList(inner), nil
			}
		}
	}
	return nil, ErrEmptyFeed
}

// asRecordList normalizes single-item and repeated elements into a list
// of records, dropping anything that is not an object.
func asRecordList(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if rec, ok := it.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}
