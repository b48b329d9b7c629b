package mqtt

import "testing"

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"pancyguard/prod/violations", "pancyguard/prod/violations", true},
		{"pancyguard/+/violations", "pancyguard/dev/violations", true},
		{"pancyguard/+/violations", "pancyguard/dev/status", false},
		{"pancyguard/#", "pancyguard/prod/violations", true},
		{"pancyguard/#", "pancyguard", true},
		{"pancyguard/+/violations", "pancyguard/violations", false},
		{"pancyguard/prod", "pancyguard/prod/violations", false},
	}

	for _, tt := range tests {
		if got := topicMatch(tt.pattern, tt.topic); got != tt.want {
			t.Errorf("topicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}
