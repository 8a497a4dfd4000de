// Package document provides the document text store consulted by lint
// requests: current text plus a monotonically increasing version per open
// document, keyed by URI.
package document

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidURI is returned for document URIs without the file scheme.
// A non-file URI is a caller error: permanent, not retried.
var ErrInvalidURI = errors.New("document uri must use the file scheme")

// PathFromURI validates that uri uses the file scheme and returns the
// filesystem path it names.
func PathFromURI(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURI, uri, err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("%w: got scheme %q in %q", ErrInvalidURI, parsed.Scheme, uri)
	}
	if parsed.Path == "" {
		return "", fmt.Errorf("%w: %q has no path", ErrInvalidURI, uri)
	}
	return parsed.Path, nil
}

// URIFromPath returns the file-scheme URI for an absolute path.
func URIFromPath(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}
