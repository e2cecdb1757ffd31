package scraper

import (
	"testing"

	"github.com/yeisme/busvault/pkg/configs"
)

// TestNewFetcherClampsNegativeRetries 负的重试配置钳制为 0，
// 避免换算成 uint 的尝试次数回绕成巨大值.
func TestNewFetcherClampsNegativeRetries(t *testing.T) {
	f := NewFetcher(&configs.ScraperConfig{
		Timeout:       30,
		Retries:       -5,
		RatePerSecond: 1.0,
	})

	if f.retries != 0 {
		t.Fatalf("retries = %d, want 0", f.retries)
	}
}

func TestNewFetcherKeepsValidRetries(t *testing.T) {
	f := NewFetcher(&configs.ScraperConfig{
		Timeout:       30,
		Retries:       3,
		RatePerSecond: 1.0,
	})

	if f.retries != 3 {
		t.Fatalf("retries = %d, want 3", f.retries)
	}
}
