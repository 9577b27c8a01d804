// Package export turns record sets into downloadable tabular files.
package export

// DefaultDelimiter joins parent and child keys when nested maps are
// flattened.
const DefaultDelimiter = "_"

// Flatten collapses a nested record into a single-level mapping for
// tabular export. Child maps with exactly one entry are unwrapped in
// place (the wrapper key keeps the inner value); child maps with more
// entries recurse, prefixing child keys with parent_key + delim.
// Scalars are stored as-is. Keys that collide after flattening are not
// de-duplicated: the last write wins.
func Flatten(record map[string]any, prefix, delim string) map[string]any {
	if delim == "" {
		delim = DefaultDelimiter
	}
	out := make(map[string]any, len(record))
	flattenInto(out, record, prefix, delim)
	return out
}

func flattenInto(out map[string]any, record map[string]any, prefix, delim string) {
	for key, value := range record {
		name := key
		if prefix != "" {
			name = prefix + delim + key
		}

		child, ok := value.(map[string]any)
		if !ok {
			out[name] = value
			continue
		}

		if len(child) == 1 {
			// Single-entry wrapper: keep the outer key, take the inner value
			for _, inner := range child {
				out[name] = inner
			}
			continue
		}

		flattenInto(out, child, name, delim)
	}
}
