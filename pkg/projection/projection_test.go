package projection

import "testing"

func TestParse(t *testing.T) {
	tests := map[string]Projection{
		"":         Summary,
		"id":       ID,
		"SUMMARY":  Summary,
		"detailed": Detailed,
		"Meta":     Meta,
	}
	for in, want := range tests {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("everything"); err == nil {
		t.Error("expected error for unknown projection")
	}
}
