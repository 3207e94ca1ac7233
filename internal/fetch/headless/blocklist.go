package headless

import "strings"

// blocklist turns configured tracking domains and heavy media extensions into
// CDP URL patterns so the browser never spends time on irrelevant bytes.
type blocklist struct {
	domains []string
	exts    []string
}

func newBlocklist(domains, exts []string) *blocklist {
	b := &blocklist{}
	for _, raw := range domains {
		value := strings.TrimSpace(strings.ToLower(raw))
		value = strings.TrimPrefix(value, "*.")
		value = strings.TrimPrefix(value, ".")
		if value != "" {
			b.domains = append(b.domains, value)
		}
	}
	for _, raw := range exts {
		value := strings.TrimSpace(strings.ToLower(raw))
		if value == "" {
			continue
		}
		if !strings.HasPrefix(value, ".") {
			value = "." + value
		}
		b.exts = append(b.exts, value)
	}
	return b
}

// patterns returns the wildcard URL patterns handed to network.SetBlockedURLS.
func (b *blocklist) patterns() []string {
	out := make([]string, 0, len(b.domains)+len(b.exts))
	for _, d := range b.domains {
		out = append(out, "*"+d+"*")
	}
	for _, e := range b.exts {
		out = append(out, "*"+e)
	}
	return out
}

// blocksHost reports whether a host matches the domain blocklist, suffix
// matching included.
func (b *blocklist) blocksHost(host string) bool {
	host = strings.TrimSpace(strings.ToLower(host))
	if host == "" {
		return false
	}
	for _, d := range b.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
