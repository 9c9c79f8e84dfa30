package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aweissman/depviz/pkg/errors"
)

// loadContent resolves the -i/--input flag into document content.
// An empty input reads stdin. A path naming an existing file is read;
// any other value is used literally, so a URI can be passed directly.
func loadContent(input string) (string, error) {
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return string(data), nil
	}

	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", input)
		}
		return string(data), nil
	}
	return input, nil
}

// normalizeURI percent-normalizes a content URI: it unquotes any existing
// escapes and re-quotes everything outside the unreserved set, keeping
// '/' and ':' literal. The upstream API may balk at non-Latin characters
// in a URI, so escaping is applied uniformly rather than trusting the
// caller's encoding.
func normalizeURI(raw string) string {
	raw = strings.TrimSpace(raw)
	unquoted, err := url.PathUnescape(raw)
	if err != nil {
		unquoted = raw
	}
	return quote(unquoted, "/:")
}

// quote percent-encodes every byte of s outside the RFC 3986 unreserved
// set and the given safe characters.
func quote(s, safe string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}

// writeOutput writes the final artifact to path, or to stdout when path
// is empty. It is only called after the whole pipeline has succeeded, so
// a failed run never leaves partial output behind.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
