package analytics

import (
	"testing"
	"time"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		ua      string
		browser string
		os      string
		device  string
	}{
		{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			"Chrome", "Windows", "Desktop",
		},
		{
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			"Safari", "macOS", "Desktop",
		},
		{
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			"Safari", "iOS", "Mobile",
		},
		{
			"Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
			"Firefox", "Linux", "Desktop",
		},
		{
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			"Chrome", "Android", "Mobile",
		},
		{
			"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
			"Safari", "iOS", "Tablet",
		},
	}
	for _, tt := range tests {
		browser, os, device := ParseUserAgent(tt.ua)
		if browser != tt.browser || os != tt.os || device != tt.device {
			t.Errorf("ParseUserAgent(%q) = (%s, %s, %s), want (%s, %s, %s)",
				tt.ua, browser, os, device, tt.browser, tt.os, tt.device)
		}
	}
}

func TestIsBot(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"Mozilla/5.0 (compatible; bingbot/2.0)", true},
		{"curl/8.0", false},
		{"Mozilla/5.0 (Windows NT 10.0) Chrome/120.0", false},
		{"AhrefsBot/7.0", true},
	}
	for _, tt := range tests {
		if got := IsBot(tt.ua); got != tt.want {
			t.Errorf("IsBot(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}

func TestCleanReferrer(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"", "Direct"},
		{"https://www.google.com/search?q=x", "Google"},
		{"https://duckduckgo.com/", "DuckDuckGo"},
		{"https://github.com/someone/repo", "GitHub"},
		{"https://www.example.org/page", "example.org"},
		{"not-a-url", "Other"},
	}
	for _, tt := range tests {
		if got := CleanReferrer(tt.ref); got != tt.want {
			t.Errorf("CleanReferrer(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	rl := &rateLimiter{
		hits:   make(map[string][]time.Time),
		max:    3,
		window: time.Minute,
	}
	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over the limit should be blocked")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other keys should be unaffected")
	}
}
