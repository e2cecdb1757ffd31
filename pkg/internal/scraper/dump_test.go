package scraper_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yeisme/busvault/pkg/internal/scraper"
	"github.com/yeisme/busvault/pkg/internal/types"
)

// TestDumpRoundTrip 落盘后的 dump 文件可以被 dump 来源完整回放.
func TestDumpRoundTrip(t *testing.T) {
	dir := t.TempDir()

	raws := []*types.RawBus{
		{
			Title:  types.StrPtr("2015 Ford Starcraft"),
			Year:   types.StrPtr("2015"),
			Make:   types.StrPtr("Ford"),
			Model:  types.StrPtr("Starcraft"),
			VIN:    types.StrPtr("1FDFE4FS8FDA12345"),
			Sold:   types.BoolPtr(false),
			Images: []types.RawImage{{Name: "image_0", URL: "https://example.com/a.jpg"}},
		},
		{
			Title: types.StrPtr("2020 Chevy 4500"),
			Year:  types.StrPtr("2020"),
			Make:  types.StrPtr("Chevy"),
			Model: types.StrPtr("4500"),
		},
	}

	path, err := scraper.WriteDump(dir, "testsource", raws)
	if err != nil {
		t.Fatalf("write dump: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("dump written outside target dir: %s", path)
	}

	src, ok, err := scraper.NewSource("dump", scraper.Deps{DumpDir: dir})
	if !ok || err != nil {
		t.Fatalf("dump source unavailable: ok=%v err=%v", ok, err)
	}

	got, err := src.Scrape(context.Background())
	if err != nil {
		t.Fatalf("replay dump: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	if types.Str(got[0].VIN) != "1FDFE4FS8FDA12345" {
		t.Errorf("vin lost in round trip: %q", types.Str(got[0].VIN))
	}

	if len(got[0].Images) != 1 || got[0].Images[0].URL != "https://example.com/a.jpg" {
		t.Errorf("images lost in round trip: %+v", got[0].Images)
	}

	// 第二条记录未携带 images 键，回放后必须保持 nil
	if got[1].Images != nil {
		t.Errorf("absent images key must stay nil after replay")
	}
}

// TestDumpSkipsBadFiles 损坏的 dump 文件被跳过，其余文件正常回放.
func TestDumpSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := scraper.WriteDump(dir, "ok", []*types.RawBus{
		{Title: types.StrPtr("2015 Ford Starcraft")},
	}); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	src, ok, err := scraper.NewSource("dump", scraper.Deps{DumpDir: dir})
	if !ok || err != nil {
		t.Fatalf("dump source unavailable: ok=%v err=%v", ok, err)
	}

	got, err := src.Scrape(context.Background())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 record from valid file, got %d", len(got))
	}
}

// TestDumpSourceRequiresDir dump 来源必须配置目录.
func TestDumpSourceRequiresDir(t *testing.T) {
	if _, ok, err := scraper.NewSource("dump", scraper.Deps{}); !ok || err == nil {
		t.Fatalf("expected factory error for missing dump dir, ok=%v err=%v", ok, err)
	}
}

// TestNewSourceUnknown 未注册来源返回 ok=false 而不是错误.
func TestNewSourceUnknown(t *testing.T) {
	if _, ok, err := scraper.NewSource("nope", scraper.Deps{}); ok || err != nil {
		t.Fatalf("unknown source: ok=%v err=%v", ok, err)
	}
}

// TestRegisteredSourcesSorted 来源列表有序且包含内置来源.
func TestRegisteredSourcesSorted(t *testing.T) {
	names := scraper.GetRegisteredSources()

	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("source names not sorted: %v", names)
		}
	}

	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}

	if !found["dump"] || !found["daimler"] {
		t.Errorf("built-in sources missing from %v", names)
	}
}
