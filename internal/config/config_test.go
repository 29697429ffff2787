package config

import "testing"

func TestSetDefaults(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)

	assertStringEqual(t, "service.name", defaultServiceName, cfg.Service.Name)
	assertStringEqual(t, "service.version", defaultVersion, cfg.Service.Version)
	assertIntEqual(t, "service.port", defaultServicePort, cfg.Service.Port)

	assertStringEqual(t, "database.host", "", cfg.Database.Host)
	assertIntEqual(t, "database.port", defaultDBPort, cfg.Database.Port)
	assertStringEqual(t, "database.database", defaultDBName, cfg.Database.Database)
	assertStringEqual(t, "database.sslmode", defaultDBSSLMode, cfg.Database.SSLMode)

	assertIntEqual(t, "rate_limit.share_max_requests",
		defaultShareMaxRequests, cfg.RateLimit.ShareMaxRequests)
	assertIntEqual(t, "rate_limit.share_window_seconds",
		defaultShareWindowSecs, cfg.RateLimit.ShareWindowSeconds)
	assertIntEqual(t, "rate_limit.max_tracked_clients",
		defaultMaxTrackedClients, cfg.RateLimit.MaxTrackedClients)

	assertStringEqual(t, "logging.level", defaultLoggingLevel, cfg.Logging.Level)
	assertStringEqual(t, "logging.format", defaultLoggingFmt, cfg.Logging.Format)
}

func TestConfigured_EmptyDatabase(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)

	if cfg.Database.Configured() {
		t.Error("expected empty database config to report unconfigured")
	}
	if cfg.Database.AdminConfigured() {
		t.Error("expected empty database config to report admin unconfigured")
	}
}

func TestValidate_AdminUserWithoutPassword(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Host = "localhost"
	cfg.Database.AdminUser = "profile_admin"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing admin password, got nil")
	}

	expected := "database.admin_password: is required when admin_user is set"
	if err.Error() != expected {
		t.Errorf("error message: got %q, want %q", err.Error(), expected)
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no validation error, got: %v", err)
	}
}

func TestDSN(t *testing.T) {
	t.Helper()

	db := &DatabaseConfig{
		Host:          "localhost",
		Port:          5432,
		User:          "profile_public",
		Password:      "secret",
		AdminUser:     "profile_admin",
		AdminPassword: "supersecret",
		Database:      "profile_intake",
		SSLMode:       "disable",
	}

	expected := "host=localhost port=5432 user=profile_public password=secret " +
		"dbname=profile_intake sslmode=disable"
	if got := db.DSN(); got != expected {
		t.Errorf("DSN:\ngot:  %q\nwant: %q", got, expected)
	}

	expectedAdmin := "host=localhost port=5432 user=profile_admin password=supersecret " +
		"dbname=profile_intake sslmode=disable"
	if got := db.AdminDSN(); got != expectedAdmin {
		t.Errorf("AdminDSN:\ngot:  %q\nwant: %q", got, expectedAdmin)
	}
}

// assertStringEqual is a test helper that checks string equality.
func assertStringEqual(t *testing.T, field, want, got string) {
	t.Helper()

	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}

// assertIntEqual is a test helper that checks int equality.
func assertIntEqual(t *testing.T, field string, want, got int) {
	t.Helper()

	if got != want {
		t.Errorf("%s: got %d, want %d", field, got, want)
	}
}
