package extract

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/linkharvest/links"
)

// LinkExtractor collects anchor hrefs from HTML.
type LinkExtractor struct {
	filter links.Filter
}

// NewLinkExtractor creates a LinkExtractor. The zero Filter keeps every link.
func NewLinkExtractor(filter links.Filter) *LinkExtractor {
	return &LinkExtractor{filter: filter}
}

// Extract returns the unique href values of all <a> elements in document order.
// Anchors without an href (or with an empty one) are skipped. Relative hrefs
// are resolved against baseURL when it is non-empty.
//
// Parsing is best-effort: markup that cannot be parsed yields an empty set.
func (e *LinkExtractor) Extract(html string, baseURL string) *links.Set {
	set := links.NewSet()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return set
	}

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		link := Resolve(href, baseURL)
		if e.filter.Enabled() && !e.filter.Allow(link) {
			return
		}
		set.Add(link)
	})

	return set
}

// ExtractFile reads the HTML document at path and extracts its links.
func (e *LinkExtractor) ExtractFile(path string, baseURL string) (*links.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HTML file %s: %w", path, err)
	}
	return e.Extract(string(data), baseURL), nil
}

// Resolve resolves href against baseURL the way a browser would, but
// without normalizing: the href text is kept as written, so non-ASCII or
// unescaped characters are not percent-encoded.
// Hrefs with a scheme, an empty base, or a base that fails to parse are
// returned verbatim.
func Resolve(href string, baseURL string) string {
	if baseURL == "" || hasScheme(href) {
		return href
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	var prefix string
	if base.Scheme != "" {
		prefix = base.Scheme + ":"
	}
	if strings.HasPrefix(href, "//") {
		return prefix + href
	}
	if base.Host != "" || base.User != nil {
		prefix += "//"
		if base.User != nil {
			prefix += base.User.String() + "@"
		}
		prefix += base.Host
	}

	refPath, refQuery, hasQuery, refFrag, hasFrag := splitRef(href)

	var p, query string
	switch {
	case refPath == "":
		p = rawPath(base)
		query = base.RawQuery
		if hasQuery {
			query = refQuery
		}
		hasQuery = hasQuery || base.RawQuery != ""
	case strings.HasPrefix(refPath, "/"):
		p = removeDotSegments(refPath)
		query = refQuery
	default:
		bp := rawPath(base)
		switch {
		case bp == "" && prefix != "":
			p = "/" + refPath
		default:
			p = bp[:strings.LastIndex(bp, "/")+1] + refPath
		}
		p = removeDotSegments(p)
		query = refQuery
	}

	out := prefix + p
	if hasQuery {
		out += "?" + query
	}
	if hasFrag {
		out += "#" + refFrag
	}
	return out
}

// hasScheme reports whether ref starts with a URI scheme ("mailto:",
// "HTTPS:", ...).
func hasScheme(ref string) bool {
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return false
			}
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}

// splitRef splits a reference into its raw path, query and fragment.
func splitRef(ref string) (p, query string, hasQuery bool, frag string, hasFrag bool) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref, frag, hasFrag = ref[:i], ref[i+1:], true
	}
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref, query, hasQuery = ref[:i], ref[i+1:], true
	}
	return ref, query, hasQuery, frag, hasFrag
}

// rawPath returns the path of u as it was written.
func rawPath(u *url.URL) string {
	if u.RawPath != "" {
		return u.RawPath
	}
	return u.EscapedPath()
}

// removeDotSegments drops "." and ".." segments from an absolute path.
func removeDotSegments(p string) string {
	if !strings.HasPrefix(p, "/") {
		return p
	}
	segs := strings.Split(p, "/")
	out := make([]string, 0, len(segs))
	last := len(segs) - 1
	for i, seg := range segs {
		switch seg {
		case ".":
			if i == last {
				out = append(out, "")
			}
		case "..":
			if len(out) > 1 {
				out = out[:len(out)-1]
			}
			if i == last {
				out = append(out, "")
			}
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}
