package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("FRONTEND_ORIGIN", "")

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want default 8000", cfg.Port)
	}
	if cfg.FrontendOrigin != "http://localhost:3000" {
		t.Errorf("FrontendOrigin = %q, want default localhost origin", cfg.FrontendOrigin)
	}
	if cfg.GeminiAPIKey != "" || cfg.YouTubeAPIKey != "" {
		t.Errorf("expected empty API keys, got %q / %q", cfg.GeminiAPIKey, cfg.YouTubeAPIKey)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "gk-test")
	t.Setenv("YOUTUBE_API_KEY", "yt-test")
	t.Setenv("FRONTEND_ORIGIN", "https://app.example.com")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.GeminiAPIKey != "gk-test" {
		t.Errorf("GeminiAPIKey = %q, want gk-test", cfg.GeminiAPIKey)
	}
	if cfg.YouTubeAPIKey != "yt-test" {
		t.Errorf("YouTubeAPIKey = %q, want yt-test", cfg.YouTubeAPIKey)
	}
	if cfg.FrontendOrigin != "https://app.example.com" {
		t.Errorf("FrontendOrigin = %q, want https://app.example.com", cfg.FrontendOrigin)
	}
}
