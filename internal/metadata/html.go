package metadata

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// extractFromHTML pulls title, description and icon candidates out of a
// raw page. OG and Twitter tags win over the document title; icon
// candidates are ranked so PNG/SVG/apple-touch images come before ICO.
func extractFromHTML(raw []byte, baseURL string) *Result {
	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil
	}

	ex := &htmlExtractor{
		meta:  make(map[string]string),
		icons: []string{},
	}
	ex.walk(doc)

	title := firstOf(ex.meta, "og:title", "twitter:title")
	if title == "" {
		title = strings.TrimSpace(ex.docTitle)
	}
	description := firstOf(ex.meta, "og:description", "twitter:description", "description")

	candidates := []string{}
	if social := firstOf(ex.meta, "og:image", "twitter:image", "twitter:image:src"); social != "" {
		candidates = append(candidates, resolveRef(baseURL, social))
	}
	for _, href := range ex.icons {
		candidates = append(candidates, resolveRef(baseURL, href))
	}

	result := &Result{
		Title:       title,
		Description: description,
		Icons:       rankIcons(dedupe(candidates)),
	}
	if result.Title == "" && result.Description == "" && len(result.Icons) == 0 {
		return nil
	}
	return result
}

type htmlExtractor struct {
	docTitle string
	meta     map[string]string
	icons    []string
}

func (ex *htmlExtractor) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if n.FirstChild != nil && ex.docTitle == "" {
				ex.docTitle = n.FirstChild.Data
			}
		case "meta":
			key := attr(n, "property")
			if key == "" {
				key = attr(n, "name")
			}
			if content := attr(n, "content"); key != "" && content != "" {
				if _, seen := ex.meta[key]; !seen {
					ex.meta[key] = content
				}
			}
		case "link":
			rel := strings.ToLower(attr(n, "rel"))
			href := attr(n, "href")
			if href != "" && isIconRel(rel) {
				ex.icons = append(ex.icons, href)
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		ex.walk(child)
	}
}

func isIconRel(rel string) bool {
	switch rel {
	case "icon", "shortcut icon", "mask-icon",
		"apple-touch-icon", "apple-touch-icon-precomposed", "fluid-icon":
		return true
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func firstOf(meta map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(meta[key]); v != "" {
			return v
		}
	}
	return ""
}

func resolveRef(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// rankIcons moves high-quality candidates (png, svg, apple-touch) ahead
// of everything else while keeping relative order stable.
func rankIcons(icons []string) []string {
	sort.SliceStable(icons, func(i, j int) bool {
		return iconQuality(icons[i]) && !iconQuality(icons[j])
	})
	return icons
}

func iconQuality(u string) bool {
	lower := strings.ToLower(u)
	return strings.Contains(lower, "png") ||
		strings.Contains(lower, "svg") ||
		strings.Contains(lower, "apple-touch-icon")
}
