package data

// MergeFrom copies other's answers into d. Every value of other is copied
// unless d already holds a non-empty value at the same path, in which case d
// keeps its own. Nested objects are merged recursively. other is not
// modified and shares no nodes with d afterwards.
//
// Merging is idempotent but not symmetric: the receiver is the side that wins
// conflicts.
func (d *ApplicantData) MergeFrom(other *ApplicantData) {
	if other == nil || other == d {
		return
	}
	mergeObject(d.root, other.root)
}

func mergeObject(dst, src *node) {
	for key, incoming := range src.fields {
		existing, ok := dst.fields[key]
		switch {
		case !ok || existing.isEmpty():
			dst.fields[key] = incoming.clone()
		case existing.kind == kindObject && incoming.kind == kindObject:
			mergeObject(existing, incoming)
		}
	}
}
