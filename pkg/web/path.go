package web

import (
	"strings"
)

// PathPartType represents the type of path part
type PathPartType int

const (
	StaticPart PathPartType = iota
	ParameterPart
	WildcardPart
)

// PathPart represents a single part of a route path
type PathPart struct {
	Type      PathPartType
	Value     string // literal text for static parts, parameter name otherwise
	ParamType string // optional type hint, e.g. "int" in {id:int}
}

// Path is a route pattern written as /users/{id} or /files/{*}.
type Path string

// NewPath creates a new Path from a string
func NewPath(path string) Path {
	return Path(path)
}

// Raw returns the original pattern
func (p Path) Raw() string {
	return string(p)
}

// Parts parses the path into static, parameter and wildcard parts
func (p Path) Parts() []PathPart {
	path := string(p)
	var parts []PathPart

	i := 0
	for i < len(path) {
		if path[i] != '{' {
			start := i
			for i < len(path) && path[i] != '{' {
				i++
			}
			parts = append(parts, PathPart{Type: StaticPart, Value: path[start:i]})
			continue
		}

		end := strings.IndexByte(path[i:], '}')
		if end == -1 {
			// unterminated brace, keep it literal
			parts = append(parts, PathPart{Type: StaticPart, Value: path[i:]})
			break
		}

		content := path[i+1 : i+end]
		if content == "*" {
			parts = append(parts, PathPart{Type: WildcardPart, Value: "*"})
		} else {
			name, typ, _ := strings.Cut(content, ":")
			parts = append(parts, PathPart{Type: ParameterPart, Value: name, ParamType: typ})
		}
		i += end + 1
	}

	return parts
}

// Convert renders the path in a router's syntax. Parameters become
// prefix+name and the wildcard becomes wildcard.
func (p Path) Convert(prefix, wildcard string) string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case ParameterPart:
			b.WriteString(prefix)
			b.WriteString(part.Value)
		case WildcardPart:
			b.WriteString(wildcard)
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// ColonPath renders the path in the :name syntax shared by echo, gin and fiber.
func (p Path) ColonPath() string {
	return p.Convert(":", "*")
}

// FromColonPath turns a router pattern such as /users/:id back into Path syntax.
func FromColonPath(route string) string {
	segments := strings.Split(route, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			segments[i] = "{" + seg[1:] + "}"
		case strings.HasPrefix(seg, "*"):
			segments[i] = "{*}"
		}
	}
	return strings.Join(segments, "/")
}
