package phpserial

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// projectJSON walks a decoded value tree and renders it as JSON text. It
// hand-walks the ordered tree (arrays/objects must keep insertion order
// and the contiguous-int-keys-as-array rule, which a generic marshaler
// cannot express) but delegates scalar encoding - numbers, escaped
// strings, raw fragments - to jsoniter's low-level Stream, the same way
// minio-simdjson-go's ecosystem leans on json-iterator for the encode
// side of JSON work.
func projectJSON(root *PhpValue, cfg Config) (string, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)

	var slots []*PhpValue
	if cfg.ResolveReferences {
		slots = buildSlotIndex(root)
	}
	proj := &projector{stream: stream, policy: cfg.Errors, slots: slots}
	if err := proj.write(root); err != nil {
		return "", err
	}
	if stream.Error != nil {
		return "", stream.Error
	}
	return string(stream.Buffer()), nil
}

type projector struct {
	stream     *jsoniter.Stream
	policy     UTF8Policy
	slots      []*PhpValue
	projecting map[*PhpValue]bool
}

// buildSlotIndex re-derives the reference table's allocation order from
// the already-decoded value tree, since the parser itself stores only
// slot kinds, not slot values. Traversal order here must
// mirror the parser's entry order exactly: a container's own slot is
// appended before its children are visited, and pairs are visited key
// then value, matching parseArray/parseObject.
func buildSlotIndex(v *PhpValue) []*PhpValue {
	var slots []*PhpValue
	var walk func(v *PhpValue)
	walk = func(v *PhpValue) {
		if v.Kind == KindReference {
			return
		}
		slots = append(slots, v)
		if v.Kind == KindArray || v.Kind == KindObject {
			for i := range v.Pairs {
				walk(&v.Pairs[i].Key)
				walk(&v.Pairs[i].Value)
			}
		}
	}
	walk(v)
	return slots
}

func (p *projector) write(v *PhpValue) error {
	switch v.Kind {
	case KindNull:
		p.stream.WriteNil()
	case KindBool:
		p.stream.WriteBool(v.Bool)
	case KindInt:
		p.stream.WriteInt64(v.Int)
	case KindFloat:
		writeFloat(p.stream, v.Float)
	case KindString:
		return p.writeString(v.Str.Bytes)
	case KindArray:
		return p.writeArray(v)
	case KindObject:
		return p.writeObject(v)
	case KindCustomObject:
		return p.writeCustomObject(v)
	case KindEnum:
		return p.writeEnum(v)
	case KindReference:
		return p.writeReference(v)
	default:
		return fmt.Errorf("phpserial: unknown value kind %d", v.Kind)
	}
	return nil
}

func writeFloat(stream *jsoniter.Stream, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		stream.WriteNil()
		return
	}
	// strconv's shortest round-trip form, written as a raw numeric
	// fragment through jsoniter's buffer so the whole document still
	// flows through one Stream.
	stream.WriteRaw(strconv.FormatFloat(f, 'g', -1, 64))
}

func (p *projector) writeString(b []byte) error {
	if utf8.Valid(b) {
		p.stream.WriteString(string(b))
		return nil
	}
	switch p.policy {
	case PolicyStrict:
		return fmt.Errorf("phpserial: invalid UTF-8 in string under strict errors policy")
	case PolicyBytes:
		p.stream.WriteString(lossyByteString(b))
		return nil
	default: // PolicyReplace
		p.stream.WriteString(replaceInvalidUTF8(b))
		return nil
	}
}

// replaceInvalidUTF8 substitutes U+FFFD for each invalid byte sequence
// while passing valid runs through unchanged.
func replaceInvalidUTF8(b []byte) string {
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, utf8.RuneError)
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return string(out)
}

// lossyByteString renders each raw byte as its own code point so the
// "bytes" policy surfaces the original octets as best JSON (which must
// be valid UTF-8 text) allows, rather than silently dropping them.
func lossyByteString(b []byte) string {
	out := make([]rune, len(b))
	for i, c := range b {
		out[i] = rune(c)
	}
	return string(out)
}

func (p *projector) keyString(k *PhpValue) string {
	switch k.Kind {
	case KindInt:
		return strconv.FormatInt(k.Int, 10)
	case KindString:
		if utf8.Valid(k.Str.Bytes) {
			return string(k.Str.Bytes)
		}
		if p.policy == PolicyBytes {
			return lossyByteString(k.Str.Bytes)
		}
		return replaceInvalidUTF8(k.Str.Bytes)
	default:
		return k.Kind.string()
	}
}

func (p *projector) writeArray(v *PhpValue) error {
	if v.IsIndexedArray() {
		p.stream.WriteArrayStart()
		for i := range v.Pairs {
			if i > 0 {
				p.stream.WriteMore()
			}
			if err := p.write(&v.Pairs[i].Value); err != nil {
				return err
			}
		}
		p.stream.WriteArrayEnd()
		return nil
	}

	p.stream.WriteObjectStart()
	for i := range v.Pairs {
		if i > 0 {
			p.stream.WriteMore()
		}
		p.stream.WriteObjectField(p.keyString(&v.Pairs[i].Key))
		if err := p.write(&v.Pairs[i].Value); err != nil {
			return err
		}
	}
	p.stream.WriteObjectEnd()
	return nil
}

func (p *projector) writeObject(v *PhpValue) error {
	hasClassKey := false
	for i := range v.Pairs {
		if p.keyString(&v.Pairs[i].Key) == "__class__" {
			hasClassKey = true
			break
		}
	}

	p.stream.WriteObjectStart()
	wroteField := false
	if !hasClassKey {
		p.stream.WriteObjectField("__class__")
		if err := p.writeString(v.ClassName.Bytes); err != nil {
			return err
		}
		wroteField = true
	}
	for i := range v.Pairs {
		if wroteField {
			p.stream.WriteMore()
		}
		p.stream.WriteObjectField(p.keyString(&v.Pairs[i].Key))
		if err := p.write(&v.Pairs[i].Value); err != nil {
			return err
		}
		wroteField = true
	}
	p.stream.WriteObjectEnd()
	return nil
}

func (p *projector) writeCustomObject(v *PhpValue) error {
	p.stream.WriteObjectStart()
	p.stream.WriteObjectField("__class__")
	if err := p.writeString(v.ClassName.Bytes); err != nil {
		return err
	}
	p.stream.WriteMore()
	p.stream.WriteObjectField("__data__")
	p.stream.WriteString(base64.StdEncoding.EncodeToString(v.Payload))
	p.stream.WriteObjectEnd()
	return nil
}

func (p *projector) writeEnum(v *PhpValue) error {
	p.stream.WriteObjectStart()
	p.stream.WriteObjectField("__enum__")
	combined := string(v.ClassName.Bytes) + ":" + string(v.CaseName.Bytes)
	p.stream.WriteString(combined)
	p.stream.WriteObjectEnd()
	return nil
}

// writeReference defaults to null, or, when ResolveReferences is set,
// resolves to the referenced value's own projection. It must terminate
// on cycles by tracking values currently being projected.
func (p *projector) writeReference(v *PhpValue) error {
	if p.slots == nil {
		p.stream.WriteNil()
		return nil
	}
	if v.RefIndex < 1 || v.RefIndex > len(p.slots) {
		p.stream.WriteNil()
		return nil
	}
	target := p.slots[v.RefIndex-1]
	if p.projecting == nil {
		p.projecting = make(map[*PhpValue]bool)
	}
	if p.projecting[target] {
		p.stream.WriteNil()
		return nil
	}
	p.projecting[target] = true
	defer delete(p.projecting, target)
	return p.write(target)
}

func (k Kind) string() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCustomObject:
		return "customObject"
	case KindEnum:
		return "enum"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}
