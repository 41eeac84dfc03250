package config

import "testing"

func TestLoadLivrariaDefaults(t *testing.T) {
	cfg := LoadLivraria()

	if cfg.Port != "5000" {
		t.Fatalf("want default port 5000, got %q", cfg.Port)
	}
	if cfg.CreateLimitWindow != 60 {
		t.Fatalf("want default window 60, got %d", cfg.CreateLimitWindow)
	}
	if cfg.AdminSecret != "" || cfg.MetricsEnabled {
		t.Fatalf("admin and metrics must default off: %+v", cfg)
	}
}

func TestLoadLivrariaFromEnv(t *testing.T) {
	t.Setenv("PORT", "8050")
	t.Setenv("ADMIN_SECRET", "s3cret")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("CREATE_LIMIT", "10")

	cfg := LoadLivraria()
	if cfg.Port != "8050" || cfg.AdminSecret != "s3cret" || !cfg.MetricsEnabled || cfg.CreateLimit != 10 {
		t.Fatalf("env not honored: %+v", cfg)
	}
}

func TestLoadLivrariaBadNumbersFallBack(t *testing.T) {
	t.Setenv("CREATE_LIMIT", "lots")
	t.Setenv("METRICS_ENABLED", "kinda")

	cfg := LoadLivraria()
	if cfg.CreateLimit != 0 || cfg.MetricsEnabled {
		t.Fatalf("bad values must fall back to defaults: %+v", cfg)
	}
}

func TestLoadStorefrontDefaults(t *testing.T) {
	cfg := LoadStorefront()

	if cfg.ServerURL != "http://127.0.0.1:5000" {
		t.Fatalf("want default server url, got %q", cfg.ServerURL)
	}
	if cfg.CartPath == "" {
		t.Fatal("cart path must never be empty")
	}
}
