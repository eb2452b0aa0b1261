package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCatalogMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_catalog.sql")

	checks := []string{
		"CREATE TABLE printing_rates",
		"CREATE UNIQUE INDEX uq_machine_sheet_color ON printing_rates (machine_id, sheet_size, color_mode)",
		"CREATE UNIQUE INDEX uq_shop_service_code ON service_rates (shop_id, code)",
		"REFERENCES service_rates (id) ON DELETE CASCADE",
		"DROP TABLE printing_rates",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestQuoteMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_quotes.sql")

	checks := []string{
		"CREATE TABLE quote_requests",
		"status            text NOT NULL DEFAULT 'DRAFT'",
		"REFERENCES quote_requests (id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX uq_quote_item_finishing ON quote_item_finishings (quote_item_id, finishing_rate_id)",
		"CREATE UNIQUE INDEX uq_quote_request_service ON quote_request_services (quote_request_id, service_rate_id)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEveryMigrationHasDown(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no migration files found")
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		content := string(data)
		if !strings.Contains(content, "-- +goose Up") {
			t.Errorf("%s is missing the goose up marker", filepath.Base(path))
		}
		if !strings.Contains(content, "-- +goose Down") {
			t.Errorf("%s is missing the goose down marker", filepath.Base(path))
		}
	}
}
