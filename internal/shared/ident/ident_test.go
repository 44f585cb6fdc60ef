package ident

import (
	"testing"
	"time"
)

func fixedResolver() *Resolver {
	return NewResolverWith(
		func() time.Time { return time.Unix(0, 1700000000000000000) },
		func() string { return "abcd1234" },
	)
}

func TestResolveKeepsCandidate(t *testing.T) {
	r := fixedResolver()
	if got := r.Resolve("sigiriya-rock", "whatever"); got != "sigiriya-rock" {
		t.Fatalf("expected candidate id kept, got %q", got)
	}
}

func TestResolveGeneratesSlugWithSuffix(t *testing.T) {
	r := fixedResolver()
	got := r.Resolve("", "Sigiriya Rock Fortress")
	if len(got) < 32 || got[:23] != "sigiriya-rock-fortress-" {
		t.Fatalf("expected slug prefix, got %q", got)
	}
	if got[len(got)-9:] != "-abcd1234" {
		t.Fatalf("expected injected suffix, got %q", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := fixedResolver()
	a := r.Resolve("", "Galle Fort")
	b := r.Resolve("", "Galle Fort")
	if a != b {
		t.Fatalf("same injected sources must give same id: %q vs %q", a, b)
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := fixedResolver()
	got := r.Resolve("", "   ")
	if got[:7] != "record-" {
		t.Fatalf("expected record fallback slug, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Sigiriya Rock Fortress", "sigiriya-rock-fortress"},
		{"  Ella -- Nine Arches!  ", "ella-nine-arches"},
		{"UPPER", "upper"},
		{"99 Bends", "99-bends"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
