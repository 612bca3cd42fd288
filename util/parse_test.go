package util

import "testing"

func TestParseKeyValueLines(t *testing.T) {
	text := "Mach Virtual Memory Statistics: (page size of 16384 bytes)\n" +
		"Pages free:                              100000.\n" +
		"Pages active:                            200000.\n" +
		"\n" +
		"no colon line\n"
	m := ParseKeyValueLines(text)
	if got := m["Pages free"]; got != "100000" {
		t.Fatalf("Pages free = %q, want %q", got, "100000")
	}
	if got := m["Pages active"]; got != "200000" {
		t.Fatalf("Pages active = %q, want %q", got, "200000")
	}
	if _, ok := m["no colon line"]; ok {
		t.Fatalf("line without colon should be skipped")
	}
}

func TestLenientParsers(t *testing.T) {
	if got := ParseUint64(" 42 "); got != 42 {
		t.Fatalf("ParseUint64 = %d, want 42", got)
	}
	if got := ParseUint64("nope"); got != 0 {
		t.Fatalf("ParseUint64 on garbage = %d, want 0", got)
	}
	if got := ParseFloat64("3.5"); got != 3.5 {
		t.Fatalf("ParseFloat64 = %v, want 3.5", got)
	}
	if got := ParseInt("-7"); got != -7 {
		t.Fatalf("ParseInt = %d, want -7", got)
	}
}
