package phpserial

import "bytes"

// isDBEscaped detects the DB-export wrapping shape: outer double quotes
// with every embedded '"' doubled to '""'. Detection only requires the
// outer quotes plus length >= 2 (pure atomic forms like `"N;"` also
// count). Preprocess rewrites every buffer of this shape; an inner `""`
// only decides whether un-doubling is needed beyond stripping the quotes.
func isDBEscaped(data []byte) bool {
	return len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"'
}

// Preprocess reverses the common DB-export escaping convention: it
// strips the outer quotes and un-doubles every `""` into `"`. It returns
// the possibly-rewritten buffer and whether a rewrite actually happened.
// When no rewrite is needed, the input slice is returned unchanged
// (still borrowed, no allocation). Preprocess is not recursive: calling
// it again on its own output is a no-op once the outer-quote shape is
// gone, matching the "MUST NOT recursively apply" contract.
func Preprocess(data []byte) ([]byte, bool) {
	if !isDBEscaped(data) {
		return data, false
	}
	inner := data[1 : len(data)-1]
	if !bytes.Contains(inner, []byte(`""`)) {
		// An outer-quoted atomic form like `"N;"` with no embedded quote
		// to un-double is still a valid candidate; stripping the outer
		// quotes is itself the rewrite.
		return inner, true
	}

	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '"' && i+1 < len(inner) && inner[i+1] == '"' {
			out = append(out, '"')
			i++
			continue
		}
		out = append(out, inner[i])
	}
	return out, true
}
