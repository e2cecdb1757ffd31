package normalize_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yeisme/busvault/pkg/internal/normalize"
	"github.com/yeisme/busvault/pkg/internal/types"
)

// validRaw 构造一条可以通过全部校验的记录.
func validRaw() *types.RawBus {
	return &types.RawBus{
		Title: types.StrPtr("2015 Ford Starcraft"),
		Year:  types.StrPtr("2015"),
		Make:  types.StrPtr("Ford"),
		Model: types.StrPtr("Starcraft"),
	}
}

func TestValidateOK(t *testing.T) {
	raw := validRaw()
	raw.VIN = types.StrPtr("1FDFE4FS8FDA12345")
	raw.ContactEmail = types.StrPtr("sales@example.com")
	raw.ContactPhone = types.StrPtr("+12025550123")

	res := normalize.Validate(raw)
	if !res.OK {
		t.Fatalf("expected valid record, got errors: %v", res.Errors)
	}

	if res.Error() != nil {
		t.Fatalf("Error() on OK result should be nil, got %v", res.Error())
	}
}

// TestValidateMissingRequired 缺少必填字段时必须逐个报告.
func TestValidateMissingRequired(t *testing.T) {
	res := normalize.Validate(&types.RawBus{Title: types.StrPtr("some bus")})
	if res.OK {
		t.Fatal("expected validation failure")
	}

	for _, field := range []string{"year", "make", "model"} {
		found := false

		for _, e := range res.Errors {
			if strings.Contains(e, field) {
				found = true
			}
		}

		if !found {
			t.Errorf("missing error for required field %s, got %v", field, res.Errors)
		}
	}
}

// TestValidateCollectsAllErrors 多个违例必须全部收集，不在第一个处停止.
func TestValidateCollectsAllErrors(t *testing.T) {
	raw := validRaw()
	raw.Make = types.StrPtr(strings.Repeat("x", 26))
	raw.VIN = types.StrPtr("BADVIN")
	raw.Year = types.StrPtr("1850")

	res := normalize.Validate(raw)
	if res.OK {
		t.Fatal("expected validation failure")
	}

	if len(res.Errors) < 3 {
		t.Fatalf("expected at least 3 errors, got %v", res.Errors)
	}

	if !errors.Is(res.Error(), normalize.ErrValidation) {
		t.Errorf("Error() should wrap ErrValidation, got %v", res.Error())
	}
}

func TestValidateFieldLimits(t *testing.T) {
	raw := validRaw()
	raw.Title = types.StrPtr(strings.Repeat("t", 257))

	res := normalize.Validate(raw)
	if res.OK {
		t.Fatal("expected failure for oversized title")
	}

	if !strings.Contains(res.Errors[0], "title") {
		t.Errorf("unexpected error: %v", res.Errors)
	}
}

// TestValidateFieldLimitsMultibyte 长度上限按字符计：多字节标题在 256 字符
// 以内必须通过，即使字节数远超 256.
func TestValidateFieldLimitsMultibyte(t *testing.T) {
	raw := validRaw()
	raw.Title = types.StrPtr(strings.Repeat("大", 200)) // 200 字符，600 字节

	if res := normalize.Validate(raw); !res.OK {
		t.Fatalf("200-rune title must pass the 256-rune limit, got %v", res.Errors)
	}

	raw.Title = types.StrPtr(strings.Repeat("大", 257))

	if res := normalize.Validate(raw); res.OK {
		t.Fatal("257-rune title must be rejected")
	}
}

// TestValidateFieldsAllowsSparse 稀疏记录（仅 vin/price）通过字段级校验，
// 必填检查只由 ValidateRequired 承担.
func TestValidateFieldsAllowsSparse(t *testing.T) {
	sparse := &types.RawBus{
		VIN:   types.StrPtr("WDB9066571S123456"),
		Price: types.StrPtr("450000"),
	}

	if res := normalize.ValidateFields(sparse); !res.OK {
		t.Fatalf("sparse record must pass field checks, got %v", res.Errors)
	}

	if res := normalize.ValidateRequired(sparse); res.OK {
		t.Fatal("sparse record must fail the required-field check")
	}

	// 稀疏记录里出现的坏格式仍然被字段级校验拦下
	sparse.VIN = types.StrPtr("BADVIN")

	if res := normalize.ValidateFields(sparse); res.OK {
		t.Fatal("bad vin must fail field checks even on a sparse record")
	}
}

func TestValidateFormats(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.RawBus)
	}{
		{"vin with forbidden letter", func(r *types.RawBus) {
			r.VIN = types.StrPtr("IODQ11111111111II")
		}},
		{"vin too short", func(r *types.RawBus) {
			r.VIN = types.StrPtr("1FDFE4FS8")
		}},
		{"bad email", func(r *types.RawBus) {
			r.ContactEmail = types.StrPtr("not-an-email")
		}},
		{"bad phone", func(r *types.RawBus) {
			r.ContactPhone = types.StrPtr("555-CALL-NOW")
		}},
		{"year out of range", func(r *types.RawBus) {
			r.Year = types.StrPtr("3000")
		}},
		{"year not a number", func(r *types.RawBus) {
			r.Year = types.StrPtr("two thousand")
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := validRaw()
			c.mutate(raw)

			if res := normalize.Validate(raw); res.OK {
				t.Errorf("expected validation failure")
			}
		})
	}
}
