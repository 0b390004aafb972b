package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Failure kinds reported by the transport.
var (
	// ErrInvalidURL indicates the target could not be parsed as an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrConnection indicates a failure while connecting, sending or reading.
	ErrConnection = errors.New("connection error")
)

// Error is a classified transport failure. Kind is ErrInvalidURL or
// ErrConnection; Err is the underlying cause.
type Error struct {
	Kind error
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func invalidURLError(raw string, err error) *Error {
	return &Error{Kind: ErrInvalidURL, URL: raw, Err: redactCause(err, raw)}
}

func connectionError(target *url.URL, err error) *Error {
	redacted := redactURL(target)
	return &Error{Kind: ErrConnection, URL: redacted, Err: redactCause(err, redacted)}
}

// redactCause replaces the URL carried by a *url.Error, which net/http and
// url.Parse fill with the full request URL including the api_key.
func redactCause(err error, redacted string) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) || uerr.URL == redacted {
		return err
	}
	if _, direct := err.(*url.Error); !direct {
		// Wrapped: the outer text already embeds the URL, keep only the cause.
		return &url.Error{Op: uerr.Op, URL: redacted, Err: uerr.Err}
	}
	clean := *uerr
	clean.URL = redacted
	return &clean
}

// ParseURL parses rawURL and requires an absolute http or https URL.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, invalidURLError(redactRawURL(rawURL), err)
	}
	if err := validateURL(u); err != nil {
		return nil, err
	}
	return u, nil
}

func validateURL(u *url.URL) error {
	if u == nil {
		return invalidURLError("", errors.New("nil URL"))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalidURLError(redactURL(u), fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return invalidURLError(redactURL(u), errors.New("missing host"))
	}
	return nil
}

// redactURL strips credentials, query and fragment so URLs can be logged
// without leaking API keys or session ids.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.User = nil
	clean.RawQuery = ""
	clean.Fragment = ""
	return clean.String()
}

// redactRawURL is redactURL for strings that did not parse: it drops the
// query, the fragment and any userinfo before the host.
func redactRawURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	authority, path, hasPath := strings.Cut(rest, "/")
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	if hasPath {
		return scheme + "://" + authority + "/" + path
	}
	return scheme + "://" + authority
}
