package kafka

import "testing"

func TestIsConfigured(t *testing.T) {
	var nilCfg *Config
	if nilCfg.IsConfigured() {
		t.Error("nil config must report not configured")
	}

	if (&Config{}).IsConfigured() {
		t.Error("empty brokers must report not configured")
	}

	if !(&Config{Brokers: "localhost:9092"}).IsConfigured() {
		t.Error("expected configured")
	}
}

func TestGetBrokers(t *testing.T) {
	cfg := &Config{Brokers: "broker1:9092,broker2:9092"}
	brokers := cfg.GetBrokers()
	if len(brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(brokers))
	}
	if brokers[0] != "broker1:9092" || brokers[1] != "broker2:9092" {
		t.Errorf("unexpected brokers: %v", brokers)
	}
}
