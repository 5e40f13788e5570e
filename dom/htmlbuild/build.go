package htmlbuild

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/domcore/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnsupportedNode is returned for parse tree nodes without a DOM counterpart,
// e.g. error nodes.
var ErrUnsupportedNode = errors.New("html node type has no DOM counterpart")

// ErrNoDocument is returned if a document has to be built from a parse tree
// node which is not a document node.
var ErrNoDocument = errors.New("parse tree root is not a document")

// Parse parses an HTML document and builds a DOM document from it, owned by agent.
func Parse(agent *dom.Agent, r io.Reader) (*dom.Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return Build(agent, root)
}

// Build converts an HTML parse tree into DOM nodes owned by agent.
//
// If root is a document node, a new DOM document is built and returned. Otherwise
// the subtree at root is converted into nodes of a new, empty document; the
// returned node has no parent.
func Build(agent *dom.Agent, root *html.Node) (*dom.Node, error) {
	doc := agent.NewDocument()
	if root.Type == html.DocumentNode {
		if err := appendChildren(doc, doc, root); err != nil {
			return nil, err
		}
		tracer().Debugf("htmlbuild: built %s", doc)
		return doc, nil
	}
	return convert(doc, root)
}

// BuildDocument is like Build, but requires root to be a document node.
func BuildDocument(agent *dom.Agent, root *html.Node) (*dom.Node, error) {
	if root == nil || root.Type != html.DocumentNode {
		return nil, ErrNoDocument
	}
	return Build(agent, root)
}

// ParseFragment parses an HTML fragment in the context of element ctx, which
// also determines the node document of the result. The parsed nodes are returned
// as children of a new document fragment.
func ParseFragment(ctx *dom.Node, r io.Reader) (*dom.Node, error) {
	if ctx == nil || ctx.Kind() != dom.ElementNode {
		return nil, fmt.Errorf("htmlbuild: fragment context must be an element, is %v", ctx)
	}
	name := strings.ToLower(ctx.NodeName())
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, err
	}
	doc := ctx.OwnerDocument()
	fragment := doc.CreateDocumentFragment()
	for _, h := range nodes {
		n, err := convert(doc, h)
		if err != nil {
			return nil, err
		}
		if _, err = fragment.AppendChild(n); err != nil {
			return nil, err
		}
	}
	return fragment, nil
}

// convert creates a DOM node for h, including its subtree.
func convert(doc *dom.Node, h *html.Node) (*dom.Node, error) {
	switch h.Type {
	case html.ElementNode:
		el := doc.CreateElement(h.Data)
		for _, a := range h.Attr {
			if err := el.SetAttribute(attributeName(a), a.Val); err != nil {
				return nil, err
			}
		}
		if err := appendChildren(doc, el, h); err != nil {
			return nil, err
		}
		return el, nil
	case html.TextNode:
		return doc.CreateTextNode(h.Data), nil
	case html.CommentNode:
		return doc.CreateComment(h.Data), nil
	case html.DoctypeNode:
		return doc.CreateDocumentType(h.Data), nil
	}
	return nil, fmt.Errorf("%w: type %d", ErrUnsupportedNode, h.Type)
}

// appendChildren converts the children of h and appends them to parent.
// Declarative shadow roots are attached to parent instead.
func appendChildren(doc, parent *dom.Node, h *html.Node) error {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if mode, ok := shadowRootMode(c); ok && parent.Kind() == dom.ElementNode {
			shadow, err := parent.AttachShadow(mode)
			if err == nil {
				if err = appendChildren(doc, shadow, c); err != nil {
					return err
				}
				continue
			}
			tracer().Infof("htmlbuild: keeping declarative shadow root as template: %v", err)
		}
		n, err := convert(doc, c)
		if err != nil {
			return err
		}
		if _, err = parent.AppendChild(n); err != nil {
			return err
		}
	}
	return nil
}

// shadowRootMode checks for <template shadowrootmode="open|closed">.
func shadowRootMode(h *html.Node) (dom.ShadowRootMode, bool) {
	if h.Type != html.ElementNode || h.DataAtom != atom.Template {
		return dom.ShadowRootOpen, false
	}
	for _, a := range h.Attr {
		if a.Namespace != "" || a.Key != "shadowrootmode" {
			continue
		}
		switch strings.ToLower(a.Val) {
		case "open":
			return dom.ShadowRootOpen, true
		case "closed":
			return dom.ShadowRootClosed, true
		}
	}
	return dom.ShadowRootOpen, false
}

func attributeName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}
