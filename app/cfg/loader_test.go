package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestRemoteStoreConfigured(t *testing.T) {
	cfg := &Cfg{}
	if cfg.RemoteStoreConfigured() {
		t.Error("Empty DB host must select the snapshot path")
	}

	cfg.DBHost = "localhost"
	if !cfg.RemoteStoreConfigured() {
		t.Error("A DB host must select the database path")
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("UTC should be a valid timezone: %v", err)
	}

	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
}
