package rule_test

import (
	"testing"

	"github.com/yeisme/busvault/pkg/rule"
)

func TestValidateVarVIN(t *testing.T) {
	valid := []string{
		"1FDFE4FS8FDA12345",
		"4UZAB2DT1CCBH1234",
	}
	for _, v := range valid {
		if err := rule.ValidateVar(v, "vin"); err != nil {
			t.Errorf("vin %q should be valid, got %v", v, err)
		}
	}

	invalid := []string{
		"",
		"1FDFE4FS8",            // 太短
		"1FDFE4FS8FDA1234567",  // 太长
		"IFDFE4FS8FDA12345",    // 含 I
		"OFDFE4FS8FDA12345",    // 含 O
		"QFDFE4FS8FDA12345",    // 含 Q
		"1fdfe4fs8fda12345",    // 小写
	}
	for _, v := range invalid {
		if err := rule.ValidateVar(v, "vin"); err == nil {
			t.Errorf("vin %q should be invalid", v)
		}
	}
}

func TestValidateVarUSPhone(t *testing.T) {
	valid := []string{
		"+12025550123",
		"12025550123",
		"2025550123",
	}
	for _, v := range valid {
		if err := rule.ValidateVar(v, "usphone"); err != nil {
			t.Errorf("phone %q should be valid, got %v", v, err)
		}
	}

	invalid := []string{
		"",
		"202-555-0123",
		"call me",
		"+1202",
	}
	for _, v := range invalid {
		if err := rule.ValidateVar(v, "usphone"); err == nil {
			t.Errorf("phone %q should be invalid", v)
		}
	}
}
