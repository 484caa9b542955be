// Package phpserial decodes the byte stream produced by PHP's
// serialize() into an in-memory value tree, and optionally projects that
// tree directly to JSON. It is a pure decoder: it does not re-serialize
// values, evaluate object semantics, or transcode character encodings.
//
// The entry points are Parse, ParseToJSON, Preprocess, and
// IsProbablySerialized; Config tunes their behavior.
package phpserial

// MustParse is like Parse but panics on error. Intended for tests and
// one-off scripts.
func MustParse(data []byte, cfg Config) *PhpValue {
	v, err := Parse(data, cfg)
	if err != nil {
		panic(err)
	}
	return v
}
