package mmapfile

import (
	"fmt"
	"reflect"
	"strings"
)

// checkPOD verifies that t is plain old data: fixed size, fixed alignment,
// no interior indirection, and every bit pattern of its size a legal value.
// The mapped bytes originate from a file and may be arbitrary, so anything
// the runtime interprets is rejected: pointers of every flavor, and bool,
// whose only legal encodings are 0 and 1.
func checkPOD(t reflect.Type) error {
	if t.Size() == 0 {
		return &ErrNotPOD{Type: t.String(), Reason: "zero size"}
	}
	if reason := podViolation(t); reason != "" {
		return &ErrNotPOD{Type: t.String(), Reason: reason}
	}
	return nil
}

func podViolation(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return ""
	case reflect.Bool:
		return "bool has invalid bit patterns"
	case reflect.Array:
		return podViolation(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if reason := podViolation(f.Type); reason != "" {
				return fmt.Sprintf("field %s: %s", f.Name, reason)
			}
		}
		return ""
	default:
		return fmt.Sprintf("kind %s has indirection or no fixed layout", t.Kind())
	}
}

// typeTag derives a stable structural identity for t. It deliberately
// avoids reflective type names: the tag is built from kinds, sizes, and
// field offsets, so renaming a struct does not invalidate existing files
// and two types with the same layout are interchangeable. Layout changes
// (field order, widths, padding) produce a different tag and fail the
// type check at open time. Callers wanting a different contract override
// the tag with WithTag.
func typeTag(t reflect.Type) string {
	var b strings.Builder
	appendTypeTag(&b, t)
	fmt.Fprintf(&b, "@%d", t.Size())
	return b.String()
}

func appendTypeTag(b *strings.Builder, t reflect.Type) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fmt.Fprintf(b, "i%d", t.Size()*8)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		fmt.Fprintf(b, "u%d", t.Size()*8)
	case reflect.Float32, reflect.Float64:
		fmt.Fprintf(b, "f%d", t.Size()*8)
	case reflect.Complex64, reflect.Complex128:
		fmt.Fprintf(b, "c%d", t.Size()*8)
	case reflect.Array:
		fmt.Fprintf(b, "[%d]", t.Len())
		appendTypeTag(b, t.Elem())
	case reflect.Struct:
		b.WriteByte('{')
		for i := range t.NumField() {
			if i > 0 {
				b.WriteByte(',')
			}
			f := t.Field(i)
			fmt.Fprintf(b, "%d:", f.Offset)
			appendTypeTag(b, f.Type)
		}
		b.WriteByte('}')
	default:
		// Unreachable after checkPOD; keep the tag deterministic anyway.
		fmt.Fprintf(b, "?%s", t.Kind())
	}
}
