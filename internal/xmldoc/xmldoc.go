// Package xmldoc wraps parsed XML trees with namespace-aware XPath evaluation.
//
// All expressions are evaluated against a fixed prefix table covering the
// vocabularies that appear in Fedora 3 datastreams: MODS metadata, XLink
// attributes, and XACML access policies. Compiled expressions are cached so
// that applying the same mapping to thousands of files compiles each XPath
// once.
package xmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// namespaces maps the XPath prefixes usable in expressions to their URIs.
var namespaces = map[string]string{
	"mods":  "http://www.loc.gov/mods/v3",
	"xlink": "http://www.w3.org/1999/xlink",
	"xacml": "urn:oasis:names:tc:xacml:1.0:policy",
}

var (
	exprMu    sync.RWMutex
	exprCache = map[string]*xpath.Expr{}
)

// compile returns a compiled expression for the given XPath, caching results.
func compile(expression string) (*xpath.Expr, error) {
	exprMu.RLock()
	cached, ok := exprCache[expression]
	exprMu.RUnlock()
	if ok {
		return cached, nil
	}

	compiled, err := xpath.CompileWithNS(expression, namespaces)
	if err != nil {
		return nil, fmt.Errorf("compiling xpath %q: %w", expression, err)
	}

	exprMu.Lock()
	exprCache[expression] = compiled
	exprMu.Unlock()
	return compiled, nil
}

// Document is a parsed XML document ready for XPath queries. Expressions are
// evaluated relative to the root element, so a MODS document answers paths
// like "mods:titleInfo/mods:title" directly.
type Document struct {
	doc  *xmlquery.Node
	root *xmlquery.Node
}

// Parse reads and parses an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exodus.ErrParse, err)
	}
	root := doc.FirstChild
	for root != nil && root.Type != xmlquery.ElementNode {
		root = root.NextSibling
	}
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", exodus.ErrParse)
	}
	return &Document{doc: doc, root: root}, nil
}

// ParseBytes parses an in-memory XML document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(strings.NewReader(string(data)))
}

// ParseFile opens and parses the XML file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Nodes evaluates the XPath expression and returns all matching nodes.
func (d *Document) Nodes(expression string) ([]*xmlquery.Node, error) {
	compiled, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return xmlquery.QuerySelectorAll(d.root, compiled), nil
}

// Root returns the document's root element.
func (d *Document) Root() *xmlquery.Node {
	return d.root
}

// Wrap makes an element from an existing tree queryable with paths relative
// to that element.
func Wrap(node *xmlquery.Node) *Document {
	return &Document{doc: node, root: node}
}

// Strings evaluates the XPath expression and returns the text value of each
// match. Element matches yield their concatenated text content, attribute
// matches yield the attribute value. Values are whitespace-trimmed; empty
// values are dropped.
func (d *Document) Strings(expression string) ([]string, error) {
	nodes, err := d.Nodes(expression)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, node := range nodes {
		text := strings.TrimSpace(node.InnerText())
		if text != "" {
			values = append(values, text)
		}
	}
	return values, nil
}

// First returns the text value of the first match, or "" when nothing matches.
func (d *Document) First(expression string) (string, error) {
	values, err := d.Strings(expression)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

// NodeText returns the whitespace-trimmed text content of a node.
func NodeText(node *xmlquery.Node) string {
	return strings.TrimSpace(node.InnerText())
}

// Attr returns the value of the named attribute on an element node,
// or "" when the attribute is absent.
func Attr(node *xmlquery.Node, name string) string {
	return node.SelectAttr(name)
}
