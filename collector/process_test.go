package collector

import "testing"

func TestParseProcessTable(t *testing.T) {
	out := "  501  2099200  0.0  alice  /Applications/Google Chrome.app/Contents/Frameworks/Google Chrome Helper\n" +
		"  502    51200  0.0  alice  Google Chrome Helper\n" +
		"  503   204800  12.5 alice  Slack\n" +
		"  504      512  0.0  alice  tinyproc\n" +
		"  bad line\n" +
		"  505  notanum  0.0  alice  broken\n" +
		"  506  102400  cpu?  alice  broken2\n" +
		"  507  102400  1.0\n"
	records := ParseProcessTable(out)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(records), records)
	}

	chrome := records[0]
	if chrome.PID != 501 {
		t.Fatalf("pid = %d, want 501", chrome.PID)
	}
	if chrome.MemoryMB != 2050 {
		t.Fatalf("memory = %v MB, want 2050", chrome.MemoryMB)
	}
	if chrome.User != "alice" {
		t.Fatalf("user = %q, want alice", chrome.User)
	}
	if chrome.DisplayName() != "Google Chrome Helper" {
		t.Fatalf("display name = %q", chrome.DisplayName())
	}

	if records[1].MemoryMB != 50 {
		t.Fatalf("second record memory = %v, want 50", records[1].MemoryMB)
	}
	if records[2].CPU != 12.5 {
		t.Fatalf("slack cpu = %v, want 12.5", records[2].CPU)
	}
}

func TestParseProcessTableMemoryFloor(t *testing.T) {
	// 1024 kB is exactly 1 MB and sits on the noise floor.
	out := "1 1024 0.0 alice onemeg\n2 1025 0.0 alice overfloor\n"
	records := ParseProcessTable(out)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	for _, r := range records {
		if r.MemoryMB <= 1 {
			t.Fatalf("record %q has memory %v MB, floor is 1 MB", r.Name, r.MemoryMB)
		}
	}
}

func TestParseProcessTableEmpty(t *testing.T) {
	if got := ParseProcessTable(""); len(got) != 0 {
		t.Fatalf("empty input produced %d records", len(got))
	}
}
