package trigger

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML builds the container with id containerID from page markup.
// Trigger hrefs are resolved against base, which may be nil for markup that
// only carries absolute links. Returns ErrContainerNotFound when the page has
// no such element.
func ParseHTML(r io.Reader, base *url.URL, containerID string) (*Container, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	root := findByID(doc, containerID)
	if root == nil {
		return nil, fmt.Errorf("%w: #%s", ErrContainerNotFound, containerID)
	}

	b := &htmlBuilder{
		container: NewContainer(containerID),
		base:      base,
		seen:      map[Source]bool{Source(containerID): true},
	}
	if err := b.walk(root, Source(containerID)); err != nil {
		return nil, err
	}
	return b.container, nil
}

type htmlBuilder struct {
	container *Container
	base      *url.URL
	seen      map[Source]bool
	counter   int
}

func (b *htmlBuilder) walk(parent *html.Node, parentSrc Source) error {
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}

		src := b.sourceFor(n)
		if isCopyTrigger(n) {
			t, err := b.triggerFrom(n, src)
			if err != nil {
				return err
			}
			if err := b.container.AddTrigger(src, parentSrc, t); err != nil {
				return err
			}
		} else if err := b.container.AddElement(src, parentSrc); err != nil {
			return err
		}

		if err := b.walk(n, src); err != nil {
			return err
		}
	}
	return nil
}

// sourceFor uses the element id when it is unique, otherwise a generated
// tag-based name
func (b *htmlBuilder) sourceFor(n *html.Node) Source {
	if id := attr(n, "id"); id != "" && !b.seen[Source(id)] {
		b.seen[Source(id)] = true
		return Source(id)
	}
	for {
		b.counter++
		src := Source(fmt.Sprintf("%s#%d", n.Data, b.counter))
		if !b.seen[src] {
			b.seen[src] = true
			return src
		}
	}
}

func (b *htmlBuilder) triggerFrom(n *html.Node, src Source) (Trigger, error) {
	data := make(map[string]string)
	for _, a := range n.Attr {
		if key, ok := DatasetKey(a.Key); ok {
			data[key] = a.Val
		}
	}

	rawURL := ""
	if href := strings.TrimSpace(attr(n, "href")); href != "" {
		resolved, err := b.resolve(href)
		if err != nil {
			return Trigger{}, fmt.Errorf("trigger %s: invalid href %q: %w", src, href, err)
		}
		rawURL = resolved
	}

	t := FromDataset(string(src), rawURL, data)
	t.Label = strings.Join(strings.Fields(textContent(n)), " ")
	if t.Label == "" {
		t.Label = attr(n, "title")
	}
	return t, nil
}

func (b *htmlBuilder) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if b.base == nil {
		return ref.String(), nil
	}
	return b.base.ResolveReference(ref).String(), nil
}

func isCopyTrigger(n *html.Node) bool {
	return attr(n, ActionAttribute) == ActionCopy
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
