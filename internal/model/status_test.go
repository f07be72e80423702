package model

import "testing"

func TestParseStatus(t *testing.T) {
	valid := []string{"confermato", "completato", "cancellato", "in_attesa", "non_presentato"}
	for _, raw := range valid {
		s, err := ParseStatus(raw)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", raw, err)
		}
		if s.String() != raw {
			t.Errorf("ParseStatus(%q) = %q", raw, s)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "confirmed", "CONFERMATO", "done", "in attesa"} {
		if _, err := ParseStatus(raw); err == nil {
			t.Errorf("ParseStatus(%q): expected error", raw)
		}
	}
}

func TestStatusesCoversAllValues(t *testing.T) {
	if got := len(Statuses()); got != 5 {
		t.Fatalf("expected 5 statuses, got %d", got)
	}
}
