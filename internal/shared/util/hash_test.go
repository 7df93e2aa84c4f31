package util

import "testing"

func TestHashTextKey(t *testing.T) {
	jd := "Senior data analyst, SQL and dashboarding."
	got := HashTextKey(jd)
	if got != HashTextKey(jd) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashTextKey("other text") == got {
		t.Fatal("different texts must not collide in tests")
	}
}
