package frame

import (
	"strings"

	"golang.org/x/net/html"
)

// StripToolScript removes the injected tool script and the Tailwind
// loader from serialized markup before it is stored, so a later
// injection cannot stack a second copy. Markup without the marker
// passes through untouched (generator output is a plain fragment and
// must stay one). A document that fails to parse is stored as-is —
// losing an edit is worse than storing a dirty script tag.
func StripToolScript(raw string) string {
	if !HasToolScript(raw) && !strings.Contains(raw, "cdn.tailwindcss.com") {
		return raw
	}
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	removeMatching(doc, isInjectedScript)

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return raw
	}
	return b.String()
}

func isInjectedScript(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "script" {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val == ScriptMarker {
			return true
		}
		if a.Key == "src" && strings.Contains(a.Val, "cdn.tailwindcss.com") {
			return true
		}
	}
	return false
}

// removeMatching detaches every node in the tree for which match
// returns true.
func removeMatching(n *html.Node, match func(*html.Node) bool) {
	var doomed []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			doomed = append(doomed, c)
		} else {
			removeMatching(c, match)
		}
	}
	for _, d := range doomed {
		n.RemoveChild(d)
	}
}

// InteractiveElement is an element inside a screen's markup that can
// start a prototype connection.
type InteractiveElement struct {
	Tag string `json:"tag"`
	ID  string `json:"id"`
}

// interactiveTags are the element kinds that get connection listeners
// in prototype mode, plus anything with an explicit button role.
var interactiveTags = map[string]bool{
	"button": true,
	"a":      true,
	"input":  true,
}

// InteractiveElements lists the connectable elements in a markup
// fragment, resolving each one's identifier through the same fallback
// chain the tool script uses: id attribute, then visible text, then the
// constant placeholder.
func InteractiveElements(raw string) []InteractiveElement {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil
	}
	var out []InteractiveElement
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isInteractive(n) {
			out = append(out, InteractiveElement{Tag: n.Data, ID: elementIdentifier(n)})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func isInteractive(n *html.Node) bool {
	if interactiveTags[n.Data] {
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "role" && a.Val == "button" {
			return true
		}
	}
	return false
}

// elementIdentifier resolves an element's connection identifier:
// id attribute → visible text → "unknown".
func elementIdentifier(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val != "" {
			return a.Val
		}
	}
	if text := strings.TrimSpace(textContent(n)); text != "" {
		return text
	}
	return "unknown"
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
