package md3

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Name is a fixed 64-byte, NUL padded string field.
type Name [64]byte

// NewName builds a Name from s, truncating to 63 bytes so the field
// always keeps a terminating NUL.
func NewName(s string) Name {
	var n Name
	copy(n[:len(n)-1], s)
	return n
}

func (n Name) raw() []byte {
	if i := bytes.IndexByte(n[:], 0); i >= 0 {
		return n[:i]
	}
	return n[:]
}

// String returns the bytes up to the first NUL.
func (n Name) String() string {
	return string(n.raw())
}

// Text is String but reports names that are not valid UTF-8.
func (n Name) Text() (string, error) {
	b := n.raw()
	if !utf8.Valid(b) {
		return "", fmt.Errorf("md3: name %q is not valid UTF-8", b)
	}
	return string(b), nil
}

// Latin1 decodes the name as ISO 8859-1, which older exporters wrote.
func (n Name) Latin1() string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(n.raw())
	if err != nil {
		return n.String()
	}
	return string(s)
}
