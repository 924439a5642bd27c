package uri

import "testing"

func TestDir(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"file:///root/src/a.zig", "file:///root/src", false},
		{"file:///a.zig", "file://", false},
		{"nosep", "", true},
	}
	for _, c := range cases {
		got, err := Dir(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("Dir(%q): expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Dir(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Dir(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHasSuffix(t *testing.T) {
	if !HasSuffix("file:///w/build.zig", "/build.zig") {
		t.Error("expected suffix match")
	}
	if HasSuffix("file:///w/build.zig", "/other.zig") {
		t.Error("unexpected suffix match")
	}
}

func TestContainsSegment(t *testing.T) {
	if !ContainsSegment("file:///usr/lib/std/std.zig", "std") {
		t.Error("expected segment match")
	}
	if ContainsSegment("file:///usr/lib/other/std.zig", "missing") {
		t.Error("unexpected segment match")
	}
}

func TestFromPathToPath(t *testing.T) {
	u := FromPath("/tmp/project/a.zig")
	got, err := ToPath(u)
	if err != nil {
		t.Fatalf("ToPath: %v", err)
	}
	if got != "/tmp/project/a.zig" {
		t.Errorf("round trip mismatch: got %q", got)
	}
}
