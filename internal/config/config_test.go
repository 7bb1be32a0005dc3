package config

import (
	"testing"
	"time"
)

func TestParseServices(t *testing.T) {
	services, err := parseServices("scanner=http://s:9101/healthz, engine=http://e:9102/healthz")
	if err != nil {
		t.Fatalf("parseServices: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("services = %v, want 2 entries", services)
	}
	if services["engine"] != "http://e:9102/healthz" {
		t.Errorf("engine url = %q", services["engine"])
	}
}

func TestParseServicesEmptyDisablesProbing(t *testing.T) {
	services, err := parseServices("  ")
	if err != nil {
		t.Fatalf("parseServices: %v", err)
	}
	if len(services) != 0 {
		t.Errorf("services = %v, want empty map", services)
	}
}

func TestParseServicesRejectsMalformedEntry(t *testing.T) {
	if _, err := parseServices("scanner-no-url"); err == nil {
		t.Error("expected error for entry without '='")
	}
}

func TestValidateCatchesBadProbeTimings(t *testing.T) {
	cfg := &Config{
		Health: HealthConfig{
			ProbeInterval: 2 * time.Second,
			ProbeTimeout:  5 * time.Second, // longer than the interval
		},
		DB: DBConfig{QueryTimeout: time.Second},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when probe timeout exceeds interval")
	}
}

func TestValidateRequiresQueryTimeout(t *testing.T) {
	cfg := &Config{
		Health: HealthConfig{
			ProbeInterval: 5 * time.Second,
			ProbeTimeout:  2 * time.Second,
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero DB query timeout")
	}
}
