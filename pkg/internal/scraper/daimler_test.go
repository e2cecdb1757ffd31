package scraper

import (
	"context"
	"testing"

	"github.com/yeisme/busvault/pkg/internal/types"
)

// 无 data-model-id，解析时不触发图集请求.
const daimlerBoxSample = `
	<div class="coaches-models-image">
		<a href="#"><img src="thumb.jpg"></a>
		<span>Sold</span>
	</div>
	<h4>2023 Mercedes Benz Tourrider – U1234 – 56 Passengers | $495,000</h4>
	<div>
		<strong>VIN#:</strong> WDB9066571S123456<br>
		<strong>Engine:</strong> Mercedes-Benz OM 470<br>
		<strong>Mileage:</strong> 70,470<br>
	</div>
`

func TestDaimlerParseBox(t *testing.T) {
	src := &daimlerSource{}

	raw, err := src.parseBox(context.Background(), daimlerBoxSample)
	if err != nil {
		t.Fatalf("parse box: %v", err)
	}

	cases := []struct {
		name string
		got  *string
		want string
	}{
		{"title", raw.Title, "2023 Mercedes Benz Tourrider – U1234 – 56 Passengers | $495,000"},
		{"year", raw.Year, "2023"},
		{"make", raw.Make, "Mercedes Benz"},
		{"model", raw.Model, "Tourrider"},
		{"passengers", raw.Passengers, "56 Passengers"},
		{"vin", raw.VIN, "WDB9066571S123456"},
		{"engine", raw.Engine, "Mercedes-Benz OM 470"},
		{"mileage", raw.Mileage, "70,470"},
		{"price", raw.Price, "495,000"},
		{"source", raw.Source, daimlerSourceName},
	}

	for _, c := range cases {
		if types.Str(c.got) != c.want {
			t.Errorf("%s = %q, want %q", c.name, types.Str(c.got), c.want)
		}
	}

	if raw.Sold == nil || !*raw.Sold {
		t.Error("sold marker not detected")
	}

	if raw.Images != nil {
		t.Error("no model id present, images must stay nil")
	}
}

// TestDaimlerParseBoxUnsold 无 Sold 标记与部分字段缺失的区块.
func TestDaimlerParseBoxUnsold(t *testing.T) {
	box := `
	<h4>2019 Setra TopClass S 417 | Call for price</h4>
	<div>
		<strong>Mileage:</strong> 120,000<br>
	</div>
	`

	src := &daimlerSource{}

	raw, err := src.parseBox(context.Background(), box)
	if err != nil {
		t.Fatalf("parse box: %v", err)
	}

	if raw.Sold == nil || *raw.Sold {
		t.Error("expected sold=false for box without marker")
	}

	if raw.Price != nil {
		t.Errorf("no dollar amount, price must be absent, got %q", *raw.Price)
	}

	if types.Str(raw.Mileage) != "120,000" {
		t.Errorf("mileage = %q", types.Str(raw.Mileage))
	}

	if raw.VIN != nil {
		t.Error("missing vin must stay absent")
	}
}

// TestDaimlerParseBoxNoTitle 无标题区块报错，由调用方跳过.
func TestDaimlerParseBoxNoTitle(t *testing.T) {
	src := &daimlerSource{}

	if _, err := src.parseBox(context.Background(), `<div>junk</div>`); err == nil {
		t.Fatal("expected error for box without title")
	}
}
