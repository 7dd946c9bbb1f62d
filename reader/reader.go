// Package reader implements the tokenizer and recursive S-expression parser
// described in spec.md §4.2: extract string literals, strip comments, pad
// delimiters with whitespace, split on whitespace, then parse the resulting
// token stream recursively.
package reader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatsuo/goscheme/scheme"
)

// ErrEOF is returned by ReadExpr when the token buffer holds nothing more to
// parse. It lets the driver distinguish "nothing left" from a genuine
// syntax error (spec.md §4.2: "signal end-of-buffer").
var ErrEOF = errors.New("reader: end of buffer")

// ErrIncomplete is returned by ReadExpr when the buffered tokens begin a
// well-formed expression that is not yet closed (an open paren with no
// matching close, or a quote with nothing following it). The buffer is left
// untouched; callers should Feed more text and retry, which is how the REPL
// decides whether to print the continuation prompt (spec.md §6).
var ErrIncomplete = errors.New("reader: incomplete expression")

// errIncompleteInternal is the sentinel parseExpr/parseList propagate
// internally; ReadExpr translates it to the exported ErrIncomplete without
// discarding the pending tokens, unlike a real syntax error.
var errIncompleteInternal = errors.New("incomplete")

// Reader accumulates tokens fed to it and parses S-expressions off the
// front of the queue. It satisfies scheme.Reader.
type Reader struct {
	tokens []string
}

// New returns an empty Reader.
func New() *Reader {
	return &Reader{}
}

// Feed tokenizes text (processed line by line, since comment-stripping is
// a per-line operation per spec.md §4.2) and appends the resulting tokens
// to the pending queue.
func (r *Reader) Feed(text string) {
	for _, line := range strings.Split(text, "\n") {
		r.tokens = append(r.tokens, tokenizeLine(line)...)
	}
}

// ReadExpr parses and consumes one expression from the front of the pending
// token queue (scheme.Reader). It returns ErrEOF if the queue is empty, or
// ErrIncomplete if the queue holds the start of an expression but not all
// of it; in the latter case the queue is left unconsumed.
func (r *Reader) ReadExpr() (*scheme.Value, error) {
	if len(r.tokens) == 0 {
		return nil, ErrEOF
	}
	v, rest, err := parseExpr(r.tokens)
	if err == errIncompleteInternal {
		return nil, ErrIncomplete
	}
	if err != nil {
		// A genuine syntax error discards the half-read buffer (spec.md §7:
		// "clears any half-read token buffer").
		r.tokens = nil
		return nil, err
	}
	r.tokens = rest
	return v, nil
}

// tokenizeLine implements spec.md §4.2's three-step tokenizer for a single
// line of source.
func tokenizeLine(line string) []string {
	var literals []string
	var scrubbed strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '"' {
			scrubbed.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(line) && line[j] != '"' {
			j++
		}
		content := line[i+1 : j]
		literals = append(literals, content)
		fmt.Fprintf(&scrubbed, "\x00%d\x00", len(literals)-1)
		if j < len(line) {
			j++ // skip the closing quote
		}
		i = j - 1
	}
	noStrings := scrubbed.String()
	if idx := strings.IndexByte(noStrings, ';'); idx >= 0 {
		noStrings = noStrings[:idx]
	}
	noStrings = strings.ReplaceAll(noStrings, "(", " ( ")
	noStrings = strings.ReplaceAll(noStrings, ")", " ) ")
	noStrings = strings.ReplaceAll(noStrings, "'", " ' ")
	fields := strings.Fields(noStrings)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		if n, ok := placeholderIndex(f); ok {
			tokens[i] = "\"" + literals[n]
		} else {
			tokens[i] = f
		}
	}
	return tokens
}

func placeholderIndex(f string) (int, bool) {
	if len(f) < 3 || f[0] != 0 || f[len(f)-1] != 0 {
		return 0, false
	}
	n, err := strconv.Atoi(f[1 : len(f)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseExpr parses one expression off the front of tokens, returning the
// unconsumed remainder (spec.md §4.2).
func parseExpr(tokens []string) (*scheme.Value, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, errIncompleteInternal
	}
	tok, rest := tokens[0], tokens[1:]
	switch tok {
	case "(":
		return parseList(rest)
	case ")":
		return nil, nil, readErr("unexpected )")
	case "'":
		v, rest2, err := parseExpr(rest)
		if err != nil {
			return nil, nil, err
		}
		return scheme.List(scheme.Intern("quote"), v), rest2, nil
	default:
		return atom(tok), rest, nil
	}
}

// parseList parses the elements of a list after its opening "(" has already
// been consumed, including the "." dotted-tail form (spec.md §4.2, and
// spec.md §9's note that the source's own dotted-pair check after the tail
// has a typo -- this implementation requires a well-formed closing ")").
func parseList(tokens []string) (*scheme.Value, []string, error) {
	var elems []*scheme.Value
	cur := tokens
	for {
		if len(cur) == 0 {
			return nil, nil, errIncompleteInternal
		}
		switch cur[0] {
		case ")":
			return buildList(elems, scheme.Null), cur[1:], nil
		case ".":
			tailVal, rest, err := parseExpr(cur[1:])
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 {
				return nil, nil, errIncompleteInternal
			}
			if rest[0] != ")" {
				return nil, nil, readErr("malformed dotted list: expected ) after tail")
			}
			return buildList(elems, tailVal), rest[1:], nil
		default:
			v, rest, err := parseExpr(cur)
			if err != nil {
				return nil, nil, err
			}
			elems = append(elems, v)
			cur = rest
		}
	}
}

func buildList(elems []*scheme.Value, tail *scheme.Value) *scheme.Value {
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = scheme.Cons(elems[i], result)
	}
	return result
}

// atom classifies a single non-delimiter token (spec.md §4.2): the two
// boolean literals, a string literal (marked by a leading '"' that Feed
// restored from its placeholder), a number, or a symbol.
func atom(tok string) *scheme.Value {
	switch tok {
	case "#t":
		return scheme.True
	case "#f":
		return scheme.False
	}
	if strings.HasPrefix(tok, "\"") {
		return scheme.Str(tok[1:])
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return scheme.Int(n)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return scheme.Float(f)
	}
	return scheme.Intern(tok)
}

func readErr(format string, args ...interface{}) error {
	return scheme.ReadError(fmt.Sprintf(format, args...))
}
