package telegram

import "testing"

func TestIsWebhookEnabled(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"True", true},
		{"false", false},
		{"0", false},
		{"", false},
	}

	for _, c := range cases {
		cfg := &Config{UseWebhook: c.value}
		if got := cfg.IsWebhookEnabled(); got != c.want {
			t.Errorf("IsWebhookEnabled(%q) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestShouldSendReplies(t *testing.T) {
	cfg := &Config{SendReplies: "true"}
	if !cfg.ShouldSendReplies() {
		t.Error("expected replies enabled")
	}

	cfg = &Config{}
	if cfg.ShouldSendReplies() {
		t.Error("expected replies disabled by default")
	}
}
