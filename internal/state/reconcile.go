package state

// Reconcile replaces a canonical collection with freshly fetched data.
// The replacement is wholesale: the server list is the truth, deletions
// included. An empty fresh list is a valid result, not a failure.
func Reconcile[T any, K comparable](old, fresh []T, id func(T) K) []T {
	_ = old
	return fresh
}

// HasNewTrailingItem reports whether fresh ends differently than old: the
// lengths differ or the last element's id changed. Chronological feeds use
// this to decide whether to auto-scroll to the bottom after a refresh.
func HasNewTrailingItem[T any, K comparable](old, fresh []T, id func(T) K) bool {
	if len(old) != len(fresh) {
		return true
	}
	if len(fresh) == 0 {
		return false
	}
	return id(old[len(old)-1]) != id(fresh[len(fresh)-1])
}

// ResolveSelection re-derives the selected item from a refreshed collection.
// The returned item is the fresh object, never a stale cached copy; ok is
// false when the id is no longer present and the selection must reset.
func ResolveSelection[T any, K comparable](list []T, id func(T) K, selected K) (T, bool) {
	for _, item := range list {
		if id(item) == selected {
			return item, true
		}
	}
	var zero T
	return zero, false
}
