// Package textenc resolves input charset names such as "utf-8",
// "windows-1251" or "koi8-r" to decoders.
package textenc

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Lookup returns the encoding registered under name (WHATWG labels).
// An empty name and every UTF-8 label give UTF-8 with an optional byte-order mark.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8BOM, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}

	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return unicode.UTF8BOM, nil
	}
	return enc, nil
}
