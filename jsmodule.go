package siteconfig

import (
	"bytes"
	"errors"
	"fmt"
)

// jsModuleObject extracts the object literal from an ES module or CommonJS
// config file and rewrites it as a YAML flow mapping: comments and trailing
// commas are dropped, single-quoted strings become double-quoted, and every
// key separator gets a following space.
func jsModuleObject(src []byte) ([]byte, error) {
	body, err := normalizeJS(src)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	switch {
	case bytes.HasPrefix(body, []byte("export default")):
		body = body[len("export default"):]
	case bytes.HasPrefix(body, []byte("module.exports")):
		body = bytes.TrimSpace(body[len("module.exports"):])
		if !bytes.HasPrefix(body, []byte("=")) {
			return nil, errors.New("expected = after module.exports")
		}
		body = body[1:]
	default:
		return nil, errors.New("expected export default or module.exports")
	}
	body = bytes.TrimSpace(body)
	body = bytes.TrimSpace(bytes.TrimSuffix(body, []byte(";")))
	if len(body) == 0 || body[0] != '{' || body[len(body)-1] != '}' {
		return nil, errors.New("exported value is not an object literal")
	}
	return body, nil
}

// normalizeJS walks the source once, tracking string state.
func normalizeJS(src []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			n, err := copyString(&out, src[i:])
			if err != nil {
				return nil, err
			}
			i += n - 1
		case c == '`':
			return nil, errors.New("template literals are not supported")
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			out.WriteByte('\n')
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return nil, errors.New("unterminated block comment")
			}
			i += end + 3
			out.WriteByte(' ')
		case c == ',' && closesNext(src[i+1:]):
			// trailing comma before } or ]
		case c == ':':
			out.WriteString(": ")
		case c == '\t':
			out.WriteByte(' ')
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes(), nil
}

// copyString writes the quoted string at the start of s as a double-quoted
// string and returns the number of source bytes consumed.
func copyString(out *bytes.Buffer, s []byte) (int, error) {
	quote := s[0]
	out.WriteByte('"')
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 >= len(s) {
				return 0, errors.New("unterminated string")
			}
			next := s[i+1]
			if next == '\'' {
				out.WriteByte('\'')
			} else {
				out.WriteByte('\\')
				out.WriteByte(next)
			}
			i++
		case c == quote:
			out.WriteByte('"')
			return i + 1, nil
		case c == '"':
			out.WriteString(`\"`)
		case c == '\n':
			return 0, fmt.Errorf("unterminated string starting with %q", s[:i])
		default:
			out.WriteByte(c)
		}
	}
	return 0, errors.New("unterminated string")
}

// closesNext reports whether the next significant byte closes an object or
// array, skipping whitespace and comments.
func closesNext(s []byte) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := bytes.Index(s[i+2:], []byte("*/"))
			if end < 0 {
				return false
			}
			i += end + 3
		default:
			return c == '}' || c == ']'
		}
	}
	return false
}
