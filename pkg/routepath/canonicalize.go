// Package routepath normalizes request paths before routing.
package routepath

import (
	"errors"
	"strings"
)

// Result is a canonicalized request target.
type Result struct {
	// Path is the canonical path, always starting with "/".
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// Target returns the path with its query string.
func (r Result) Target() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Canonicalization errors.
var (
	ErrBackslash     = errors.New("path contains backslash")
	ErrNullByte      = errors.New("path contains null byte")
	ErrPercentEscape = errors.New("invalid percent escape sequence")
	ErrEscapesRoot   = errors.New("path escapes root via ..")
)

// Canonicalize normalizes an escaped request target ("/a//b/?x=1").
//
// Repeated slashes collapse, "." segments are dropped, ".." segments are
// resolved and a trailing slash is removed except on "/". The query is
// kept verbatim. Backslashes, NUL bytes, malformed percent escapes and
// ".." above the root are rejected.
func Canonicalize(target string) (Result, error) {
	if target == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	path, query, _ := strings.Cut(target, "?")

	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslash
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByte
	}
	if strings.Contains(path, "%") && !validEscapes(path) {
		return Result{}, ErrPercentEscape
	}

	segments := make([]string, 0, strings.Count(path, "/"))
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return Result{}, ErrEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	canonical := "/" + strings.Join(segments, "/")
	return Result{
		Path:    canonical,
		Query:   query,
		Changed: canonical != path,
	}, nil
}

func validEscapes(path string) bool {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
