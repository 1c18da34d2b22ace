package yamltree

// doMerges resolves the '<<' entry of a mapping. Local keys win over merged
// ones, and earlier merge sources win over later ones. Merged values keep the
// paths they were read at.
func doMerges(entries []MapEntry) ([]MapEntry, error) {
	var merge *MapEntry
	for i := range entries {
		if entries[i].Key.Content() != mergeKey {
			continue
		}
		if merge != nil {
			return nil, errMalformed(entries[i].Key.Path(),
				"Cannot perform multiple '<<' merges into a map. Instead, combine all merges into a single '<<' entry.")
		}
		merge = &entries[i]
	}
	if merge == nil {
		return entries, nil
	}

	var sources []Node
	if l, ok := merge.Value.(*List); ok {
		sources = l.items
	} else {
		sources = []Node{merge.Value}
	}

	result := make([]MapEntry, 0, len(entries))
	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Key.Content() == mergeKey {
			continue
		}
		result = append(result, e)
		present[e.Key.Content()] = struct{}{}
	}
	for _, src := range sources {
		m, ok := src.(*Map)
		if !ok {
			return nil, errUnsupportedMerge(src)
		}
		for _, e := range m.entries {
			if _, exists := present[e.Key.Content()]; exists {
				continue
			}
			result = append(result, e)
			present[e.Key.Content()] = struct{}{}
		}
	}
	return result, nil
}
