package phpserial

// Kind identifies which case of PhpValue is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindCustomObject
	KindEnum
	KindReference
)

// RefKind distinguishes PHP's two reference tags: R (value reference,
// aliased variables) from r (object reference, shared object handles).
// The parser preserves the distinction; it does not prescribe semantics.
type RefKind int

const (
	RefValue RefKind = iota
	RefObject
)

// PhpString carries bytes borrowed verbatim from the input buffer (or,
// after a DB-escape rewrite, from the preprocessor's rewritten buffer).
// Owned exists for API symmetry with a future producer that needs to
// hand back a freshly allocated copy; the parser itself never sets it,
// since every string it emits - including length-recovery fallback
// matches - is a slice of whichever buffer is live. Consumers must not
// assume Bytes outlives the buffer it was parsed from unless Owned is
// true.
type PhpString struct {
	Bytes []byte
	Owned bool
}

func borrowed(b []byte) PhpString { return PhpString{Bytes: b, Owned: false} }

// KV is one (key, value) pair of an Array or one (key, value) property
// pair of an Object. Keys are themselves PhpValues: the parser does not
// enforce that they are Int or String, matching producers that never
// violate this but a grammar that does not forbid it either.
type KV struct {
	Key   PhpValue
	Value PhpValue
}

// PhpValue is the tagged union of every decoded PHP value shape. Exactly
// one payload group is populated, selected by Kind.
type PhpValue struct {
	Kind Kind

	Bool  bool
	Int   int64
	Float float64
	Str   PhpString

	// Array / Object / CustomObject / Enum share these.
	ClassName PhpString // Object, CustomObject, Enum
	CaseName  PhpString // Enum only
	Pairs     []KV      // Array, Object
	Payload   []byte    // CustomObject only: opaque verbatim body bytes

	// Reference only.
	RefKind  RefKind
	RefIndex int
}

// IsIndexedArray reports whether v is a KindArray whose keys are the
// contiguous integers 0..len(Pairs)-1 in order, i.e. the shape the JSON
// projector renders as a JSON array instead of a JSON object.
func (v *PhpValue) IsIndexedArray() bool {
	if v.Kind != KindArray {
		return false
	}
	for i, kv := range v.Pairs {
		if kv.Key.Kind != KindInt || kv.Key.Int != int64(i) {
			return false
		}
	}
	return true
}

// RefTable records, in allocation order, the kind of value that occupied
// each 1-indexed reference slot. Slot i corresponds to RefTable[i-1].
// The parser appends to this as it enters reference-eligible values; it
// never materializes the referenced value itself.
type RefTable struct {
	slots []Kind
}

// Allocate reserves the next slot for a value of the given kind and
// returns its 1-based index.
func (t *RefTable) Allocate(k Kind) int {
	t.slots = append(t.slots, k)
	return len(t.slots)
}

// Len reports how many slots have been allocated so far.
func (t *RefTable) Len() int { return len(t.slots) }
