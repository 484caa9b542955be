package phpserial

import "fmt"

// ErrorKind identifies the category of a parse failure. The set is closed:
// consumers may switch on it exhaustively.
type ErrorKind int

const (
	// UnexpectedEof means the cursor ran out of bytes before a grammar
	// production could complete.
	UnexpectedEof ErrorKind = iota
	// UnexpectedByte means a required literal byte did not match.
	UnexpectedByte
	// InvalidType means the leading type tag byte is not one of the
	// recognized PHP serialize tags.
	InvalidType
	// InvalidNumber means an integer token failed to parse, including
	// 64-bit signed overflow.
	InvalidNumber
	// InvalidFloat means a float token failed to parse.
	InvalidFloat
	// InvalidLength means a declared length was malformed (e.g. negative).
	InvalidLength
	// LengthMismatch means a declared string length disagreed with the
	// actual byte run. Only ever returned in strict mode; non-strict mode
	// silently corrects via the length-recovery heuristic.
	LengthMismatch
	// UnterminatedString means a string's closing `";` could not be found
	// during length-recovery fallback.
	UnterminatedString
	// MissingSeparator is reserved; a missing structural separator byte
	// is reported as UnexpectedByte instead, since require() already
	// names the expected byte in its message.
	MissingSeparator
	// InvalidEnum means an `E` tag's combined body had no `:` separator.
	InvalidEnum
	// InvalidReference means an `R`/`r` tag's index was zero or malformed.
	InvalidReference
	// MaxDepthExceeded means recursion depth exceeded Config.MaxDepth.
	MaxDepthExceeded
	// AllocationLimitExceeded means the parser would exceed
	// Config.MaxAllocation bytes, counting the DB-escape rewrite buffer and
	// preallocated array/object pair storage. Reference slots are not
	// counted.
	AllocationLimitExceeded
	// TrailingBytes is reserved; the default (and only implemented)
	// policy is to ignore trailing bytes after the top-level value, so
	// this kind is never returned. See DESIGN.md Open Questions.
	TrailingBytes
)

var errorKindNames = [...]string{
	"UnexpectedEof",
	"UnexpectedByte",
	"InvalidType",
	"InvalidNumber",
	"InvalidFloat",
	"InvalidLength",
	"LengthMismatch",
	"UnterminatedString",
	"MissingSeparator",
	"InvalidEnum",
	"InvalidReference",
	"MaxDepthExceeded",
	"AllocationLimitExceeded",
	"TrailingBytes",
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return "Unknown"
	}
	return errorKindNames[k]
}

// ParseError is the error type returned by every exported entry point.
// Position is a byte offset into the (post-preprocess) buffer at which
// the problem was detected.
type ParseError struct {
	Kind     ErrorKind
	Position int
	Context  string
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("phpserial: %s at position %d: %s", e.Kind, e.Position, e.Context)
	}
	return fmt.Sprintf("phpserial: %s at position %d", e.Kind, e.Position)
}

func newParseError(kind ErrorKind, pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:     kind,
		Position: pos,
		Context:  fmt.Sprintf(format, args...),
	}
}
