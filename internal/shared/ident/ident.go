// Package ident assigns stable ids to content records. Admin-created records
// and CSV rows may arrive without one; the resolver derives a slug from the
// record name and suffixes it with a uniqueness token so two records created
// in the same batch never collide.
package ident

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type Resolver struct {
	now    func() time.Time
	suffix func() string
}

// NewResolver returns a resolver backed by the wall clock and random uuids.
func NewResolver() *Resolver {
	return &Resolver{
		now:    time.Now,
		suffix: func() string { return uuid.NewString()[:8] },
	}
}

// NewResolverWith injects the uniqueness sources, for deterministic tests.
func NewResolverWith(now func() time.Time, suffix func() string) *Resolver {
	return &Resolver{now: now, suffix: suffix}
}

// Resolve returns candidateID unchanged when it is non-empty. Otherwise it
// generates "slug-of-name-<unixnano>-<token>".
func (r *Resolver) Resolve(candidateID, name string) string {
	if candidateID != "" {
		return candidateID
	}
	slug := Slugify(name)
	if slug == "" {
		slug = "record"
	}
	return slug + "-" + strconv.FormatInt(r.now().UnixNano(), 36) + "-" + r.suffix()
}

// Slugify lowercases the input and collapses every run of non-alphanumeric
// characters into a single dash, trimming leading and trailing dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
