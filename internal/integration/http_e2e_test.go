//go:build integration || !unit

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/feeds"
	server "github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/http_server"
	redisad "github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/redis"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/app"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

const miralboXML = `<?xml version="1.0" encoding="UTF-8"?>
<inmuebles>
  <inmueble>
    <referencia>V-88</referencia>
    <titulo>Villa Mar</titulo>
    <promocion>Altos del Mar</promocion>
    <poblacion>Javea</poblacion>
    <precio>495000</precio>
    <habitaciones>3</habitaciones>
    <fotos>
      <foto>https://cdn.example.com/altos-pool.jpg</foto>
      <foto>https://cdn.example.com/altos-living.jpg</foto>
    </fotos>
  </inmueble>
  <inmueble>
    <referencia>V-89</referencia>
    <titulo>Villa Sol</titulo>
    <promocion>Altos del Mar</promocion>
    <poblacion>Javea</poblacion>
    <precio>650000</precio>
    <habitaciones>4</habitaciones>
  </inmueble>
</inmuebles>`

// buildStack wires the real adapters around httptest upstream feeds.
func buildStack(t *testing.T, upstreams map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	registry := make([]domain.FeedSource, 0, len(upstreams))
	for name, handler := range upstreams {
		fs := httptest.NewServer(handler)
		t.Cleanup(fs.Close)
		registry = append(registry, domain.FeedSource{Name: name, Endpoint: fs.URL, Format: "xml", Enabled: true})
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	client := feeds.New(5*time.Second, 50)
	catalog := app.NewCatalogService(registry, client, cache, time.Hour, 4)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Catalog: catalog})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)
	return api
}

func getJSON(t *testing.T, url string, dst any) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return res
}

func TestHTTP_EndToEnd_Catalog(t *testing.T) {
	api := buildStack(t, map[string]http.HandlerFunc{
		"miralbo": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(miralboXML))
		},
	})

	var props []domain.Property
	getJSON(t, api.URL+"/v1/properties", &props)
	if len(props) != 2 {
		t.Fatalf("want 2 properties, got %d", len(props))
	}
	if props[0].Slug != "v-88-villa-mar" || props[0].Developer != "Miralbo Urbana" {
		t.Fatalf("first property: %+v", props[0])
	}

	var devs []domain.Development
	getJSON(t, api.URL+"/v1/developments", &devs)
	if len(devs) != 1 {
		t.Fatalf("want 1 development, got %d", len(devs))
	}
	dev := devs[0]
	if dev.Slug != "altos-del-mar" || dev.PropertyCount != 2 {
		t.Fatalf("development: %+v", dev)
	}
	if dev.PriceFrom == nil || *dev.PriceFrom != 495000 || dev.PriceTo == nil || *dev.PriceTo != 650000 {
		t.Fatalf("price bounds: %v - %v", dev.PriceFrom, dev.PriceTo)
	}
	if dev.BedroomsRange != "3-4 bed" {
		t.Fatalf("bedroomsRange = %q", dev.BedroomsRange)
	}

	var one domain.Development
	getJSON(t, api.URL+"/v1/developments/altos-del-mar", &one)
	if one.Name != "Altos del Mar" {
		t.Fatalf("by slug: %+v", one)
	}

	res, err := http.Get(api.URL + "/v1/developments/no-such-slug")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing slug: status %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("missing slug: content type %q", ct)
	}

	var stats domain.CatalogStats
	getJSON(t, api.URL+"/v1/stats", &stats)
	if stats.TotalProperties != 2 || stats.TotalDevelopments != 1 {
		t.Fatalf("stats: %+v", stats)
	}
}

func TestHTTP_EndToEnd_PartialFeedFailure(t *testing.T) {
	api := buildStack(t, map[string]http.HandlerFunc{
		"miralbo": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(miralboXML))
		},
		"redsp": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		},
	})

	var props []domain.Property
	getJSON(t, api.URL+"/v1/properties", &props)
	if len(props) != 2 {
		t.Fatalf("healthy feed must still serve; got %d properties", len(props))
	}
	for _, p := range props {
		if p.Source != "miralbo" {
			t.Fatalf("unexpected source %q", p.Source)
		}
	}
}

func TestHTTP_EndToEnd_ETagAndInvalidate(t *testing.T) {
	fetches := 0
	api := buildStack(t, map[string]http.HandlerFunc{
		"miralbo": func(w http.ResponseWriter, r *http.Request) {
			fetches++
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(miralboXML))
		},
	})

	res, err := http.Get(api.URL + "/v1/properties")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	etag := res.Header.Get("ETag")
	res.Body.Close()
	if etag == "" {
		t.Fatal("no ETag on catalog response")
	}

	req, _ := http.NewRequest(http.MethodGet, api.URL+"/v1/properties", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional GET: status %d", res2.StatusCode)
	}
	if fetches != 1 {
		t.Fatalf("cached reads refetched upstream %d times", fetches)
	}

	res3, err := http.Post(api.URL+"/v1/cache/invalidate", "application/json", nil)
	if err != nil {
		t.Fatalf("POST invalidate: %v", err)
	}
	res3.Body.Close()
	if res3.StatusCode != http.StatusNoContent {
		t.Fatalf("invalidate: status %d", res3.StatusCode)
	}

	res4, err := http.Get(api.URL + "/v1/properties")
	if err != nil {
		t.Fatalf("GET after invalidate: %v", err)
	}
	res4.Body.Close()
	if fetches != 2 {
		t.Fatalf("invalidate did not force a refetch; fetches = %d", fetches)
	}
}

func TestHTTP_EndToEnd_CardImages(t *testing.T) {
	api := buildStack(t, map[string]http.HandlerFunc{
		"miralbo": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(miralboXML))
		},
	})

	url := fmt.Sprintf("%s/v1/card-images?development=%s&town=%s&url=%s&url=%s",
		api.URL, "Altos+del+Mar", "Javea",
		"https://cdn.example.com/altos-pool.jpg",
		"https://cdn.example.com/altos-living.jpg")

	var cards domain.CardImages
	getJSON(t, url, &cards)
	if cards.Main.URL != "https://cdn.example.com/altos-pool.jpg" {
		t.Fatalf("main card: %+v", cards.Main)
	}
	if len(cards.Secondary) != 1 {
		t.Fatalf("secondary cards: %+v", cards.Secondary)
	}

	res, err := http.Get(api.URL + "/v1/card-images")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing params: status %d", res.StatusCode)
	}
}
