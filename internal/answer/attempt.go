package answer

// AttemptList orders priority for one request. A non-empty preferred name that
// appears in priority moves to the front; everything else keeps its relative
// order and no name appears twice. A preferred name outside priority is
// ignored.
func AttemptList(priority []string, preferred string) []string {
	out := make([]string, 0, len(priority))
	seen := make(map[string]struct{}, len(priority))

	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	if preferred != "" {
		for _, name := range priority {
			if name == preferred {
				add(preferred)
				break
			}
		}
	}
	for _, name := range priority {
		add(name)
	}
	return out
}
