package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	prefix := "SatisfactoryHosting"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Instance", Instance(prefix), "SatisfactoryHosting-server"},
		{"Instance without prefix", Instance(""), "game-server"},
		{"SecurityGroup", SecurityGroup(prefix), "SatisfactoryHosting-game-ports"},
		{"Volume", Volume(prefix), "SatisfactoryHosting-saves"},
		{"StateFile", StateFile(".gamehost", prefix), ".gamehost/SatisfactoryHosting.yaml"},
		{"EnvFile", EnvFile(".gamehost", prefix), ".gamehost/SatisfactoryHosting.env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}
