package transport

import (
	"io"
	"regexp"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Charset is a named text encoding used to decode response bodies and
// encode request bodies.
type Charset struct {
	Name string
	enc  encoding.Encoding
}

// DefaultCharset is used whenever no usable charset is announced.
var DefaultCharset = Charset{Name: "UTF-8", enc: unicode.UTF8}

// Matches "harset" rather than "charset" so that "Charset=" is accepted.
var charsetPattern = regexp.MustCompile(`(?i)harset *=[ '"]*([^ ;'"]+)[ ;'"]*`)

// DetectCharset returns the charset announced in a Content-Type value, or
// DefaultCharset when there is none or it is not recognized.
func DetectCharset(contentType string) Charset {
	m := charsetPattern.FindStringSubmatch(contentType)
	if m == nil {
		return DefaultCharset
	}
	if cs, ok := LookupCharset(m[1]); ok {
		return cs
	}
	return DefaultCharset
}

// LookupCharset resolves an IANA name or alias, then a WHATWG label.
func LookupCharset(label string) (Charset, bool) {
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		return Charset{Name: canonicalName(enc, label), enc: enc}, true
	}
	if enc, name := charset.Lookup(label); enc != nil {
		return Charset{Name: name, enc: enc}, true
	}
	return Charset{}, false
}

func canonicalName(enc encoding.Encoding, fallback string) string {
	if name, err := ianaindex.MIME.Name(enc); err == nil && name != "" {
		return name
	}
	if name, err := ianaindex.IANA.Name(enc); err == nil && name != "" {
		return name
	}
	return fallback
}

func (c Charset) encoding() encoding.Encoding {
	if c.enc == nil {
		return unicode.UTF8
	}
	return c.enc
}

// NewReader decodes r from c into UTF-8.
func (c Charset) NewReader(r io.Reader) io.Reader {
	return c.encoding().NewDecoder().Reader(r)
}

// Encode converts s from UTF-8 into c.
func (c Charset) Encode(s string) ([]byte, error) {
	return c.encoding().NewEncoder().Bytes([]byte(s))
}
