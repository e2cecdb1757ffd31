package normalize_test

import (
	"testing"

	"github.com/yeisme/busvault/pkg/internal/normalize"
)

// TestPrice 验证价格规范化：剔除杂字符、补两位小数、加千位分隔符.
func TestPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"495000", "$495,000.00", true},
		{"$4,000.50", "$4,000.50", true},
		{"12345.678", "$12,345.68", true},
		{"USD 1200", "$1,200.00", true},
		{"500", "$500.00", true},
		{"Call for price", "", false},
		{"", "", false},
		{"..", "", false},
	}

	for _, c := range cases {
		got, ok := normalize.Price(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Price(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

// TestMileage 验证里程规范化：只保留数字并加千位分隔符.
func TestMileage(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"70470", "70,470", true},
		{"70,470 miles", "70,470", true},
		{"1234567", "1,234,567", true},
		{"12", "12", true},
		{"0", "0", true},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, ok := normalize.Mileage(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Mileage(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
