package feeds_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/feeds"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<inmuebles>
  <inmueble>
    <referencia>V-88</referencia>
    <titulo>Villa Mar</titulo>
    <precio>495000</precio>
    <fotos>
      <foto>https://cdn.example.com/pool.jpg</foto>
      <foto>https://cdn.example.com/exterior.jpg</foto>
    </fotos>
  </inmueble>
  <inmueble>
    <referencia>V-89</referencia>
    <titulo>Villa Sol</titulo>
  </inmueble>
</inmuebles>`

func xmlSource(url string) domain.FeedSource {
	return domain.FeedSource{Name: "miralbo", Endpoint: url, Format: "xml", Enabled: true}
}

func TestFetch_XML(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleXML))
	}))
	defer srv.Close()

	c := feeds.New(5*time.Second, 10)
	recs, err := c.Fetch(context.Background(), xmlSource(srv.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "NewBuildHomes/1.0" {
		t.Fatalf("User-Agent = %q", gotUA)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %d", len(recs))
	}
	if ref, _ := recs[0]["referencia"].(string); ref != "V-88" {
		t.Fatalf("first record = %#v", recs[0])
	}
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := feeds.New(5*time.Second, 10)
	_, err := c.Fetch(context.Background(), xmlSource(srv.URL))
	if !errors.Is(err, feeds.ErrBadStatus) {
		t.Fatalf("want ErrBadStatus, got %v", err)
	}
}

func TestFetch_NoEndpoint(t *testing.T) {
	c := feeds.New(5*time.Second, 10)
	_, err := c.Fetch(context.Background(), domain.FeedSource{Name: "redsp", Format: "xml"})
	if !errors.Is(err, feeds.ErrBadEndpoint) {
		t.Fatalf("want ErrBadEndpoint, got %v", err)
	}
}

func TestDecodeXML_SingleRecord(t *testing.T) {
	body := []byte(`<inmuebles><inmueble><referencia>V-1</referencia></inmueble></inmuebles>`)
	recs, err := feeds.DecodeXML(body)
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("want 1 record, got %d", len(recs))
	}
}

func TestDecodeXML_NoRecords(t *testing.T) {
	_, err := feeds.DecodeXML([]byte(`<inmuebles></inmuebles>`))
	if !errors.Is(err, feeds.ErrEmptyFeed) {
		t.Fatalf("want ErrEmptyFeed, got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	bare, err := feeds.DecodeJSON([]byte(`[{"id":"1"},{"id":"2"}]`))
	if err != nil || len(bare) != 2 {
		t.Fatalf("bare array: %v, %d records", err, len(bare))
	}
	wrapped, err := feeds.DecodeJSON([]byte(`{"properties":[{"id":"1"}]}`))
	if err != nil || len(wrapped) != 1 {
		t.Fatalf("wrapped: %v, %d records", err, len(wrapped))
	}
	if _, err := feeds.DecodeJSON([]byte(`{"unrelated":true}`)); !errors.Is(err, feeds.ErrEmptyFeed) {
		t.Fatalf("want ErrEmptyFeed, got %v", err)
	}
}
