package scheme

import (
	"bytes"
	"fmt"
	"strconv"
)

// WriteString renders v the way the REPL echoes a result and the way
// error's second argument is rendered: strings are quoted (spec.md §6).
func WriteString(v *Value) string {
	return writeString(v)
}

// DisplayString renders v the way the display builtin does: strings are
// printed raw, without surrounding quotes (spec.md §6).
func DisplayString(v *Value) string {
	var buf bytes.Buffer
	stringify(&buf, v, false)
	return buf.String()
}

func writeString(v *Value) string {
	var buf bytes.Buffer
	stringify(&buf, v, true)
	return buf.String()
}

func stringify(buf *bytes.Buffer, v *Value, quoted bool) {
	switch v.Type {
	case TNull:
		buf.WriteString("()")
	case TBoolean:
		if v.Bool {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case TInteger:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case TFloat:
		writeFloat(buf, v.Flt)
	case TString:
		if quoted {
			buf.WriteByte('"')
			buf.WriteString(v.Str)
			buf.WriteByte('"')
		} else {
			buf.WriteString(v.Str)
		}
	case TSymbol:
		buf.WriteString(v.Sym)
	case TPair:
		stringifyPair(buf, v, quoted)
	case TClosure:
		fmt.Fprintf(buf, "#<closure %s>", writeString(v.Params))
	case TIntrinsic:
		fmt.Fprintf(buf, "#<intrinsic %s>", v.Builtin.Name)
	case TContinuation:
		buf.WriteString("#<continuation>")
	case TVoid:
		buf.WriteString("#<void>")
	case TEof:
		buf.WriteString("#<eof>")
	default:
		buf.WriteString("#<invalid>")
	}
}

func writeFloat(buf *bytes.Buffer, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			buf.WriteString(s)
			return
		}
	}
	// Floats that equal an integer print with one decimal, e.g. 123.0
	// (spec.md §6).
	buf.WriteString(s)
	buf.WriteString(".0")
}

func stringifyPair(buf *bytes.Buffer, v *Value, quoted bool) {
	buf.WriteByte('(')
	cur := v
	first := true
	for {
		if !first {
			buf.WriteByte(' ')
		}
		first = false
		stringify(buf, cur.Car, quoted)
		switch cur.Cdr.Type {
		case TNull:
			buf.WriteByte(')')
			return
		case TPair:
			cur = cur.Cdr
		default:
			buf.WriteString(" . ")
			stringify(buf, cur.Cdr, quoted)
			buf.WriteByte(')')
			return
		}
	}
}
