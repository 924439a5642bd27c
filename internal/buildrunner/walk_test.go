package buildrunner

import "testing"

func TestAncestorWalkRootFirst(t *testing.T) {
	existing := map[string]bool{
		"/w/build.zig":        true,
		"/w/pkg/build.zig":    true,
	}
	exists := func(p string) bool { return existing[p] }

	w := NewAncestorWalk("/w/pkg/src/a.zig", exists)
	got := w.All()
	want := []string{"/w/build.zig", "/w/pkg/build.zig"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestAncestorWalkNoneExist(t *testing.T) {
	w := NewAncestorWalk("/a/b/c/d.zig", func(string) bool { return false })
	if got := w.All(); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestAncestorWalkResettable(t *testing.T) {
	exists := func(p string) bool { return p == "/root/build.zig" }
	w := NewAncestorWalk("/root/src/a.zig", exists)
	first := w.All()
	second := w.All()
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected exactly one match on each pass, got %v and %v", first, second)
	}
}
