package autodoc

import (
	"errors"
	"fmt"
	"strings"
)

// Unavailable is rendered in place of a signature that cannot be introspected.
const Unavailable = "(...)"

// Param is one declared parameter. Markers such as "*" and "/" are
// represented as params with only a Name.
type Param struct {
	Name       string
	Annotation string
	Default    string
}

func (p Param) String() string {
	var b strings.Builder
	switch {
	case p.Name == "":
		b.WriteString(p.Annotation)
	case p.Annotation != "":
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Annotation)
	default:
		b.WriteString(p.Name)
	}
	if p.Default != "" {
		if p.Annotation != "" {
			b.WriteString(" = ")
		} else {
			b.WriteString("=")
		}
		b.WriteString(p.Default)
	}
	return b.String()
}

// Signature is a call signature: the parameter list and an optional result
// annotation.
type Signature struct {
	Params []Param
	Result string
}

// Sig builds a signature from bare parameter names.
func Sig(names ...string) *Signature {
	s := &Signature{Params: make([]Param, 0, len(names))}
	for _, n := range names {
		s.Params = append(s.Params, Param{Name: n})
	}
	return s
}

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	out := "(" + strings.Join(parts, ", ") + ")"
	if s.Result != "" {
		out += " -> " + s.Result
	}
	return out
}

// WithoutReceiver drops the first declared parameter, whatever its name.
func (s Signature) WithoutReceiver() Signature {
	if len(s.Params) == 0 {
		return s
	}
	params := make([]Param, len(s.Params)-1)
	copy(params, s.Params[1:])
	return Signature{Params: params, Result: s.Result}
}

var errUnbalanced = errors.New("unbalanced brackets")

// ParseSignature parses call-signature notation such as
// "(a, b=2, *args, c: int = 1, **kw) -> str". The placeholder "(...)"
// parses as an unavailable signature (ok == false).
func ParseSignature(src string) (sig Signature, ok bool, err error) {
	src = strings.TrimSpace(src)
	if src == "" || src == Unavailable {
		return Signature{}, false, nil
	}
	if src[0] != '(' {
		return Signature{}, false, fmt.Errorf("signature %q: must start with '('", src)
	}
	end := matchingBracket(src)
	if end < 0 {
		return Signature{}, false, fmt.Errorf("signature %q: %w", src, errUnbalanced)
	}
	rest := strings.TrimSpace(src[end+1:])
	if rest != "" {
		if !strings.HasPrefix(rest, "->") {
			return Signature{}, false, fmt.Errorf("signature %q: unexpected trailing text %q", src, rest)
		}
		sig.Result = strings.TrimSpace(strings.TrimPrefix(rest, "->"))
	}
	for _, field := range splitTopLevel(src[1:end], ',') {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var p Param
		if parts := splitTopLevel(field, '='); len(parts) > 1 {
			field = strings.TrimSpace(parts[0])
			p.Default = strings.TrimSpace(strings.Join(parts[1:], "="))
		}
		if parts := splitTopLevel(field, ':'); len(parts) > 1 {
			field = strings.TrimSpace(parts[0])
			p.Annotation = strings.TrimSpace(strings.Join(parts[1:], ":"))
		}
		p.Name = field
		sig.Params = append(sig.Params, p)
	}
	return sig, true, nil
}

// matchingBracket returns the index of the bracket closing src[0], or -1.
func matchingBracket(src string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep outside of brackets and quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
