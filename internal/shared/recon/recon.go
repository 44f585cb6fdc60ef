// Package recon computes insert/update/delete sets between two keyed
// collections. It backs the admin full-content save and the CSV importer:
// both need "make the stored collection equal to the incoming one" semantics.
package recon

// Changes describes how to turn the existing collection into the incoming one.
// DeleteIDs preserves the order of the existing collection; Update and Insert
// preserve the order of the incoming collection, so output is deterministic.
type Changes[T any] struct {
	DeleteIDs []string
	Update    []T
	Insert    []T
}

// IsEmpty reports whether applying the changes would be a no-op.
func (c Changes[T]) IsEmpty() bool {
	return len(c.DeleteIDs) == 0 && len(c.Update) == 0 && len(c.Insert) == 0
}

// Diff compares existing and incoming records by key. Records present only in
// existing land in DeleteIDs; keys present in both land in Update carrying the
// full incoming record (last write wins, no field-level merging); keys present
// only in incoming land in Insert.
//
// An empty incoming slice means "delete everything existing". Callers that
// want to keep the current collection must pass it back in full.
func Diff[T any](existing, incoming []T, key func(T) string) Changes[T] {
	incomingKeys := make(map[string]struct{}, len(incoming))
	for _, rec := range incoming {
		incomingKeys[key(rec)] = struct{}{}
	}

	existingKeys := make(map[string]struct{}, len(existing))
	var out Changes[T]
	for _, rec := range existing {
		k := key(rec)
		existingKeys[k] = struct{}{}
		if _, ok := incomingKeys[k]; !ok {
			out.DeleteIDs = append(out.DeleteIDs, k)
		}
	}

	for _, rec := range incoming {
		if _, ok := existingKeys[key(rec)]; ok {
			out.Update = append(out.Update, rec)
		} else {
			out.Insert = append(out.Insert, rec)
		}
	}
	return out
}
