package transport

import (
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Cookie is a parsed Set-Cookie header. Only name, value and domain are
// kept: cookies never expire and are not scoped by path.
type Cookie struct {
	Domain string
	Name   string
	Value  string
}

var (
	attrSeparator = regexp.MustCompile(` *; *`)
	kvSeparator   = regexp.MustCompile(` *= *`)
)

// ParseSetCookie parses a Set-Cookie header value received from host.
// Without a domain attribute the cookie belongs to host exactly.
func ParseSetCookie(header, host string) (Cookie, bool) {
	parts := attrSeparator.Split(strings.TrimSpace(header), -1)
	name, value := splitPair(parts[0])
	if name == "" {
		return Cookie{}, false
	}

	c := Cookie{Name: name, Value: value}
	for _, attr := range parts[1:] {
		key, val := splitPair(attr)
		if key == "domain" {
			c.Domain = val
			break
		}
	}
	if c.Domain == "" {
		c.Domain = host
	}
	return c, true
}

// splitPair splits "key = value" on the first '='. The value is empty when
// there is no '='.
func splitPair(s string) (string, string) {
	kv := kvSeparator.Split(s, 2)
	if len(kv) == 1 {
		return kv[0], ""
	}
	return kv[0], kv[1]
}

// CookieStore maps cookie domain to cookie name to value. It is safe for
// concurrent use.
type CookieStore struct {
	mu      sync.RWMutex
	domains map[string]map[string]string
}

// NewCookieStore returns an empty store.
func NewCookieStore() *CookieStore {
	return &CookieStore{domains: make(map[string]map[string]string)}
}

// Set adds or replaces a cookie.
func (s *CookieStore) Set(domain, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cookies, ok := s.domains[domain]
	if !ok {
		cookies = make(map[string]string)
		s.domains[domain] = cookies
	}
	cookies[name] = value
}

// SetCookie parses a Set-Cookie header value received from host and stores it.
func (s *CookieStore) SetCookie(header, host string) {
	c, ok := ParseSetCookie(header, host)
	if !ok {
		return
	}
	s.Set(c.Domain, c.Name, c.Value)
}

// Get returns the value stored for name under the exact domain key.
func (s *CookieStore) Get(domain, name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.domains[domain][name]
	return v, ok
}

// Domain returns a copy of the cookies stored under the exact domain key.
func (s *CookieStore) Domain(domain string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.domains[domain])
}

// Domains returns the stored domain keys in sorted order.
func (s *CookieStore) Domains() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.domains))
}

// Clear removes every cookie.
func (s *CookieStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.domains)
}

// Header builds the Cookie header for host from every domain key that is a
// suffix of host. It returns "" when nothing matches.
func (s *CookieStore) Header(host string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sb strings.Builder
	for _, domain := range slices.Sorted(maps.Keys(s.domains)) {
		if !strings.HasSuffix(host, domain) {
			continue
		}
		cookies := s.domains[domain]
		for _, name := range slices.Sorted(maps.Keys(cookies)) {
			sb.WriteString(name)
			sb.WriteByte('=')
			sb.WriteString(cookies[name])
			sb.WriteByte(';')
		}
	}
	return strings.TrimSuffix(sb.String(), ";")
}
