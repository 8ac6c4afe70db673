package shared_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/shared"
)

func TestLoadFeeds_Defaults(t *testing.T) {
	feeds, err := shared.LoadFeeds("")
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if len(feeds) == 0 {
		t.Fatal("built-in registry is empty")
	}
	enabled := shared.EnabledFeeds(feeds)
	if len(enabled) != 1 || enabled[0].Name != "miralbo" {
		t.Fatalf("enabled = %+v", enabled)
	}
}

func TestLoadFeeds_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	doc := `feeds:
  - name: miralbo
    endpoint: https://feeds.example.com/miralbo.xml
    format: xml
    enabled: true
  - name: redsp
    endpoint: https://feeds.example.com/redsp.json
    format: json
    enabled: false
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	feeds, err := shared.LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if len(feeds) != 2 {
		t.Fatalf("want 2 feeds, got %d", len(feeds))
	}
	if feeds[1].Format != "json" || feeds[1].Enabled {
		t.Fatalf("second feed wrong: %+v", feeds[1])
	}
	if got := shared.EnabledFeeds(feeds); len(got) != 1 {
		t.Fatalf("enabled = %+v", got)
	}
}

func TestLoadFeeds_Invalid(t *testing.T) {
	dir := t.TempDir()

	noName := filepath.Join(dir, "noname.yaml")
	_ = os.WriteFile(noName, []byte("feeds:\n  - endpoint: https://x\n    format: xml\n"), 0o600)
	if _, err := shared.LoadFeeds(noName); err == nil {
		t.Fatal("nameless feed accepted")
	}

	badFormat := filepath.Join(dir, "badformat.yaml")
	_ = os.WriteFile(badFormat, []byte("feeds:\n  - name: x\n    endpoint: https://x\n    format: csv\n"), 0o600)
	if _, err := shared.LoadFeeds(badFormat); err == nil {
		t.Fatal("unsupported format accepted")
	}

	if _, err := shared.LoadFeeds(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
