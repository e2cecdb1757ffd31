package model_test

import (
	"testing"

	"github.com/yeisme/busvault/pkg/internal/model"
)

func TestNormalizeAirConditioning(t *testing.T) {
	cases := []struct {
		in   string
		want model.AirConditioningType
	}{
		{"REAR", model.ACRear},
		{" both ", model.ACBoth},
		{"dash", model.ACDash},
		{"Rear and dash mounted A/C", model.ACBoth},
		{"front a/c only", model.ACDash},
		{"rear units", model.ACRear},
		{"no a/c installed", model.ACNone},
		{"none", model.ACNone},
		{"automatic", model.ACOther},
		{"", model.ACOther},
	}

	for _, c := range cases {
		if got := model.NormalizeAirConditioning(c.in); got != c.want {
			t.Errorf("NormalizeAirConditioning(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNormalizeUSRegion(t *testing.T) {
	cases := []struct {
		in   string
		want model.USRegion
	}{
		{"NORTHEAST", model.RegionNortheast},
		{"midwest", model.RegionMidwest},
		// 历史标签 SOUTH 统一归入 SOUTHEAST
		{"SOUTH", model.RegionSoutheast},
		{"south", model.RegionSoutheast},
		{"OTHER", model.RegionOther},
		{"Winter Park, Florida", model.RegionSoutheast},
		{"", model.RegionOther},
	}

	for _, c := range cases {
		if got := model.NormalizeUSRegion(c.in); got != c.want {
			t.Errorf("NormalizeUSRegion(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseUSRegion(t *testing.T) {
	cases := []struct {
		in   string
		want model.USRegion
	}{
		{"Brooklyn, NY", model.RegionNortheast},
		{"new york", model.RegionNortheast},
		{"Chicago, Illinois", model.RegionMidwest},
		{"Dallas TX", model.RegionSouthwest},
		{"Los Angeles, CA", model.RegionWest},
		{"Atlanta, Georgia", model.RegionSoutheast},
		{"somewhere overseas", model.RegionOther},
		{"", model.RegionOther},
	}

	for _, c := range cases {
		if got := model.ParseUSRegion(c.in); got != c.want {
			t.Errorf("ParseUSRegion(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

// TestParseUSRegionWholeWord 两字母缩写必须全词匹配，普通单词不误命中.
func TestParseUSRegionWholeWord(t *testing.T) {
	// "information" 含 "in"（印第安纳缩写）但不是独立单词
	if got := model.ParseUSRegion("more information available"); got != model.RegionOther {
		t.Errorf("expected OTHER for non-location text, got %s", got)
	}
}
