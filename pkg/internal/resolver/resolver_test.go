package resolver_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/busvault/pkg/configs"
	"github.com/yeisme/busvault/pkg/internal/model"
	"github.com/yeisme/busvault/pkg/internal/resolver"
	"github.com/yeisme/busvault/pkg/internal/storage/db"
	"github.com/yeisme/busvault/pkg/internal/types"
)

func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	cfg := &configs.DBConfig{
		Type:         configs.SQLite,
		Database:     filepath.Join(t.TempDir(), "resolver_test"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	client, err := db.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := client.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return client
}

func seedBus(t *testing.T, client *db.Client, bus *model.Bus) *model.Bus {
	t.Helper()

	now := time.Now().UTC()
	bus.CreatedAt = now
	bus.UpdatedAt = now

	if err := client.GetDB().Create(bus).Error; err != nil {
		t.Fatalf("seed bus: %v", err)
	}

	return bus
}

// TestFindCandidatesVINShortCircuit VIN 命中后不再收集弱信号匹配.
func TestFindCandidatesVINShortCircuit(t *testing.T) {
	client := newTestDB(t)

	byVIN := seedBus(t, client, &model.Bus{
		Title: "old title", Year: "2020", Make: "Ford", Model: "E450",
		VIN: "1FDFE4FS8FDA12345",
	})
	seedBus(t, client, &model.Bus{
		Title: "2020 Ford E450", Year: "2020", Make: "Ford", Model: "E450",
		SourceURL: "https://example.com/e450",
	})

	raw := &types.RawBus{
		Title:     types.StrPtr("2020 Ford E450"),
		Year:      types.StrPtr("2020"),
		Make:      types.StrPtr("Ford"),
		Model:     types.StrPtr("E450"),
		VIN:       types.StrPtr("1FDFE4FS8FDA12345"),
		SourceURL: types.StrPtr("https://example.com/e450"),
	}

	got, err := resolver.FindCandidates(client.GetDB(), raw)
	if err != nil {
		t.Fatalf("find candidates: %v", err)
	}

	if len(got) != 1 || got[0].ID != byVIN.ID {
		t.Fatalf("vin match must short-circuit, got %d candidates", len(got))
	}
}

// TestFindCandidatesTupleThenURL 弱信号按 四元组在前、URL 在后 合并去重.
func TestFindCandidatesTupleThenURL(t *testing.T) {
	client := newTestDB(t)

	byURL := seedBus(t, client, &model.Bus{
		Title: "another listing", Year: "2019", Make: "Ford", Model: "E350",
		SourceURL: "https://example.com/shared",
	})
	byTuple := seedBus(t, client, &model.Bus{
		Title: "2019 Ford E350", Year: "2019", Make: "Ford", Model: "E350",
	})

	raw := &types.RawBus{
		Title:     types.StrPtr("2019 Ford E350"),
		Year:      types.StrPtr("2019"),
		Make:      types.StrPtr("Ford"),
		Model:     types.StrPtr("E350"),
		SourceURL: types.StrPtr("https://example.com/shared"),
	}

	got, err := resolver.FindCandidates(client.GetDB(), raw)
	if err != nil {
		t.Fatalf("find candidates: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}

	if got[0].ID != byTuple.ID || got[1].ID != byURL.ID {
		t.Errorf("tuple match must rank first: got %d then %d", got[0].ID, got[1].ID)
	}
}

// TestFindCandidatesDedupe 同一行同时命中四元组与 URL 时只出现一次.
func TestFindCandidatesDedupe(t *testing.T) {
	client := newTestDB(t)

	bus := seedBus(t, client, &model.Bus{
		Title: "2018 Chevy 4500", Year: "2018", Make: "Chevy", Model: "4500",
		SourceURL: "https://example.com/4500",
	})

	raw := &types.RawBus{
		Title:     types.StrPtr("2018 Chevy 4500"),
		Year:      types.StrPtr("2018"),
		Make:      types.StrPtr("Chevy"),
		Model:     types.StrPtr("4500"),
		SourceURL: types.StrPtr("https://example.com/4500"),
	}

	got, err := resolver.FindCandidates(client.GetDB(), raw)
	if err != nil {
		t.Fatalf("find candidates: %v", err)
	}

	if len(got) != 1 || got[0].ID != bus.ID {
		t.Fatalf("expected single deduped candidate, got %d", len(got))
	}
}

// TestFindCandidatesNoSignals 无可用信号时不报错、返回空.
func TestFindCandidatesNoSignals(t *testing.T) {
	client := newTestDB(t)

	seedBus(t, client, &model.Bus{
		Title: "2017 Ford Goshen", Year: "2017", Make: "Ford", Model: "Goshen",
	})

	raw := &types.RawBus{Title: types.StrPtr("2017 Ford Goshen")}

	got, err := resolver.FindCandidates(client.GetDB(), raw)
	if err != nil {
		t.Fatalf("find candidates: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}
