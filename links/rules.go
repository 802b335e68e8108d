package links

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions treated as static assets.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// nonWebPrefixes are href prefixes that never point at a fetchable page.
var nonWebPrefixes = []string{"mailto:", "javascript:", "tel:", "data:", "#"}

// Filter decides which extracted links are kept. The zero value keeps everything.
type Filter struct {
	SkipStatic bool   // drop images, stylesheets, scripts, archives, documents
	WebOnly    bool   // drop mailto:, javascript:, tel:, data: and fragment-only links
	SameHost   string // when set, keep only links on this host
}

// Enabled reports whether any rule is active.
func (f Filter) Enabled() bool {
	return f.SkipStatic || f.WebOnly || f.SameHost != ""
}

// Allow reports whether link passes every active rule.
func (f Filter) Allow(link string) bool {
	if f.WebOnly && !IsWebLink(link) {
		return false
	}
	if f.SkipStatic && IsStaticAsset(link) {
		return false
	}
	if f.SameHost != "" && !IsSameHost(link, f.SameHost) {
		return false
	}
	return true
}

// IsSameHost checks if the given URL is on the specified host.
func IsSameHost(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// IsWebLink reports whether href can name a web page.
func IsWebLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	if lower == "" {
		return false
	}
	for _, p := range nonWebPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return true
}
