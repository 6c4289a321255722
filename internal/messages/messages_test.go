package messages

import "testing"

func TestGetMessage(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{"configured locale", "en", KeyTransactionDescription, "Purchase of image licenses on the photo platform"},
		{"default locale", "", KeyTransactionDescription, "Kauf von Bildlizenzen auf der Fotoplattform"},
		{"unknown locale falls back", "fr", KeyTransactionDescription, "Kauf von Bildlizenzen auf der Fotoplattform"},
		{"unknown key returns key", "en", "no.such.key", "no.such.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(tt.locale)
			if got := c.GetMessage(tt.key); got != tt.want {
				t.Errorf("GetMessage(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
