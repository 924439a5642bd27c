// Package uri converts between filesystem paths and the document URIs the
// store keys its registries on. It is deliberately small: spec.md lists
// "the URI/path utilities" among the document store's out-of-scope
// collaborators, so nothing here reaches into store state.
package uri

import (
	"errors"
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrBadScheme is returned when a URI has no separator before the scheme
// body, so there is no directory to resolve a relative import against.
var ErrBadScheme = errors.New("uri: missing separator before scheme body")

// FromPath converts an absolute filesystem path into a file:// URI.
func FromPath(absPath string) string {
	p := filepath.ToSlash(absPath)
	if runtime.GOOS == "windows" {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// ToPath converts a file:// URI back into a filesystem path.
func ToPath(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	p := parsed.Path
	if runtime.GOOS == "windows" {
		p = strings.TrimPrefix(p, "/")
	}
	return filepath.FromSlash(p), nil
}

// Dir returns the URI of the directory containing uri, i.e. uri with its
// last path segment dropped. It fails with ErrBadScheme if uri has no
// separator before the scheme body (no slash to trim against at all).
func Dir(u string) (string, error) {
	idx := strings.Index(u, "://")
	if idx < 0 {
		return "", ErrBadScheme
	}
	slash := strings.LastIndex(u, "/")
	if slash <= idx+2 {
		return "", ErrBadScheme
	}
	return u[:slash], nil
}

// Join resolves a relative reference against a base directory URI.
func Join(baseDir string, rel string) string {
	parsed, err := url.Parse(baseDir)
	if err != nil {
		return baseDir
	}
	parsed.Path = path.Join(parsed.Path, rel)
	return parsed.String()
}

// HasSuffix reports whether the URI's path component ends with suffix.
func HasSuffix(u string, suffix string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return strings.HasSuffix(u, suffix)
	}
	return strings.HasSuffix(parsed.Path, suffix)
}

// ContainsSegment reports whether the URI's path passes through a
// directory segment named name, e.g. ContainsSegment(u, "std").
func ContainsSegment(u string, name string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg == name {
			return true
		}
	}
	return false
}
