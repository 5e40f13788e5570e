package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"iter"

	"github.com/npillmayer/domcore/orderedset"
)

// NodeKind is the type of a node, with the numeric values of the W3C node types.
type NodeKind uint16

// Node kinds. Shadow roots are document fragments with a host.
const (
	ElementNode               NodeKind = 1
	TextNode                  NodeKind = 3
	CDATASectionNode          NodeKind = 4
	ProcessingInstructionNode NodeKind = 7
	CommentNode               NodeKind = 8
	DocumentNode              NodeKind = 9
	DocumentTypeNode          NodeKind = 10
	DocumentFragmentNode      NodeKind = 11
)

func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CDATASectionNode:
		return "cdata-section"
	case ProcessingInstructionNode:
		return "processing-instruction"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	case DocumentFragmentNode:
		return "document-fragment"
	}
	return fmt.Sprintf("NodeKind(%d)", uint16(k))
}

// ShadowRootMode is the encapsulation mode of a shadow root.
type ShadowRootMode uint8

// Shadow root modes.
const (
	ShadowRootOpen ShadowRootMode = iota
	ShadowRootClosed
)

func (m ShadowRootMode) String() string {
	if m == ShadowRootClosed {
		return "closed"
	}
	return "open"
}

// Node is the identity of a DOM node. Nodes store their own kind, name,
// character data and attributes; relations to other nodes are kept in the
// agent's tree registry.
type Node struct {
	agent  *Agent
	serial uint64
	kind   NodeKind
	name   string // tag name, PI target or doctype name
	data   string // character data
	doc    *Node  // node document, nil for documents
	attrs  []Attr
	// shadow trees
	shadowRoot *Node // for hosts
	host       *Node // for shadow roots
	mode       ShadowRootMode
	// slots
	assignedSlot  *Node   // for slottables
	assignedNodes []*Node // for slots
	// events
	target targetData
	// mutation observers
	observers []*registeredObserver
	// documents only
	ranges *orderedset.Set[*Range]
}

// NewDocument creates an empty document.
func (a *Agent) NewDocument() *Node {
	doc := &Node{agent: a, kind: DocumentNode, serial: a.nextSerial()}
	doc.ranges = orderedset.New[*Range]()
	doc.target.init(a, doc)
	tracer().Debugf("dom: new document %s", doc)
	return doc
}

func (doc *Node) newNode(kind NodeKind, name, data string) *Node {
	n := &Node{
		agent:  doc.agent,
		serial: doc.agent.nextSerial(),
		kind:   kind,
		name:   name,
		data:   data,
		doc:    doc.OwnerDocument(),
	}
	if kind == DocumentNode { // clone of a document
		n.doc = nil
		n.ranges = orderedset.New[*Range]()
	}
	n.target.init(doc.agent, n)
	return n
}

// CreateElement creates an element with a given tag name.
func (doc *Node) CreateElement(name string) *Node {
	return doc.newNode(ElementNode, name, "")
}

// CreateTextNode creates a text node.
func (doc *Node) CreateTextNode(data string) *Node {
	return doc.newNode(TextNode, "", data)
}

// CreateCDATASection creates a CDATA section.
func (doc *Node) CreateCDATASection(data string) *Node {
	return doc.newNode(CDATASectionNode, "", data)
}

// CreateComment creates a comment node.
func (doc *Node) CreateComment(data string) *Node {
	return doc.newNode(CommentNode, "", data)
}

// CreateProcessingInstruction creates a processing instruction.
func (doc *Node) CreateProcessingInstruction(target, data string) *Node {
	return doc.newNode(ProcessingInstructionNode, target, data)
}

// CreateDocumentFragment creates an empty document fragment.
func (doc *Node) CreateDocumentFragment() *Node {
	return doc.newNode(DocumentFragmentNode, "", "")
}

// CreateDocumentType creates a doctype node.
func (doc *Node) CreateDocumentType(name string) *Node {
	return doc.newNode(DocumentTypeNode, name, "")
}

// AttachShadow attaches a shadow root to an element. An element may host one
// shadow root at most.
func (n *Node) AttachShadow(mode ShadowRootMode) (*Node, error) {
	if n.kind != ElementNode {
		return nil, raise(ErrNotSupported, "cannot attach shadow root to %s", n)
	}
	if n.shadowRoot != nil {
		return nil, raise(ErrNotSupported, "%s already hosts a shadow root", n)
	}
	if mode != ShadowRootOpen && mode != ShadowRootClosed {
		return nil, raise(ErrNotSupported, "undefined shadow root mode %d", mode)
	}
	root := n.OwnerDocument().newNode(DocumentFragmentNode, "", "")
	root.host = n
	root.mode = mode
	n.shadowRoot = root
	tracer().Debugf("dom: attached %s shadow root to %s", mode, n)
	return root, nil
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case ElementNode:
		return fmt.Sprintf("<%s#%d>", n.name, n.serial)
	case TextNode, CommentNode, CDATASectionNode:
		return fmt.Sprintf("%s#%d%q", n.NodeName(), n.serial, shorten(n.data))
	case DocumentFragmentNode:
		if n.host != nil {
			return fmt.Sprintf("#shadow-root(%s)#%d", n.mode, n.serial)
		}
	}
	return fmt.Sprintf("%s#%d", n.NodeName(), n.serial)
}

func shorten(s string) string {
	if r := []rune(s); len(r) > 12 {
		return string(r[:11]) + "…"
	}
	return s
}

// --- Identity ---------------------------------------------------------------

// Agent returns the agent the node belongs to.
func (n *Node) Agent() *Agent {
	return n.agent
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// NodeName returns the W3C node name.
func (n *Node) NodeName() string {
	switch n.kind {
	case TextNode:
		return "#text"
	case CDATASectionNode:
		return "#cdata-section"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	}
	return n.name
}

// OwnerDocument returns the node document. For documents, this is the document itself.
func (n *Node) OwnerDocument() *Node {
	if n.kind == DocumentNode {
		return n
	}
	return n.doc
}

// IsShadowRoot is true for shadow roots.
func (n *Node) IsShadowRoot() bool {
	return n.kind == DocumentFragmentNode && n.host != nil
}

// Host returns the host of a shadow root, or nil.
func (n *Node) Host() *Node {
	return n.host
}

// Mode returns the mode of a shadow root.
func (n *Node) Mode() ShadowRootMode {
	return n.mode
}

// ShadowRoot returns the shadow root hosted by an element, if it is open.
func (n *Node) ShadowRoot() *Node {
	if n.shadowRoot != nil && n.shadowRoot.mode == ShadowRootOpen {
		return n.shadowRoot
	}
	return nil
}

// ShadowRootOf returns the shadow root hosted by an element regardless of its
// mode. It is meant for tooling which inspects whole trees.
func ShadowRootOf(host *Node) *Node {
	return host.shadowRoot
}

// --- Navigation -------------------------------------------------------------

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node {
	return n.agent.tree.Parent(n)
}

// ParentElement returns the parent if it is an element.
func (n *Node) ParentElement() *Node {
	if p := n.Parent(); p != nil && p.kind == ElementNode {
		return p
	}
	return nil
}

// ChildNodes returns the children of n.
func (n *Node) ChildNodes() []*Node {
	return n.agent.tree.Children(n)
}

// HasChildNodes is true if n has children.
func (n *Node) HasChildNodes() bool {
	return n.agent.tree.HasChildren(n)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return n.agent.tree.ChildCount(n)
}

// ChildAt returns the i-th child or nil.
func (n *Node) ChildAt(i int) *Node {
	ch, _ := n.agent.tree.Child(n, i)
	return ch
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	return n.agent.tree.FirstChild(n)
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	return n.agent.tree.LastChild(n)
}

// PreviousSibling returns the previous sibling or nil.
func (n *Node) PreviousSibling() *Node {
	return n.agent.tree.PreviousSibling(n)
}

// NextSibling returns the next sibling or nil.
func (n *Node) NextSibling() *Node {
	return n.agent.tree.NextSibling(n)
}

// Index returns the position of n among its siblings.
func (n *Node) Index() int {
	return n.agent.tree.Index(n)
}

// Root returns the root of n's tree. This does not cross shadow boundaries.
func (n *Node) Root() *Node {
	return n.agent.tree.Root(n)
}

// ShadowIncludingRoot returns the root of n, crossing shadow roots to their hosts.
func (n *Node) ShadowIncludingRoot() *Node {
	root := n.Root()
	for root.IsShadowRoot() {
		root = root.host.Root()
	}
	return root
}

// IsConnected is true if n's shadow-including root is a document.
func (n *Node) IsConnected() bool {
	return n.ShadowIncludingRoot().kind == DocumentNode
}

// Descendants iterates over the descendants of n in tree order.
func (n *Node) Descendants() iter.Seq[*Node] {
	return n.agent.tree.Descendants(n)
}

// InclusiveAncestors iterates from n up to its root.
func (n *Node) InclusiveAncestors() iter.Seq[*Node] {
	return n.agent.tree.InclusiveAncestors(n)
}

// IsInclusiveAncestorOf is true if n is other or an ancestor of other.
func (n *Node) IsInclusiveAncestorOf(other *Node) bool {
	return n.agent.tree.IsInclusiveAncestor(n, other)
}

// Contains is true if other is an inclusive descendant of n.
func (n *Node) Contains(other *Node) bool {
	return other != nil && n.agent.tree.IsInclusiveAncestor(n, other)
}

// shadowIncludingDescendants iterates over n and its shadow-including
// descendants in shadow-including tree order.
func (n *Node) shadowIncludingInclusiveDescendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walkShadowIncluding(yield)
	}
}

func (n *Node) walkShadowIncluding(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	if n.shadowRoot != nil && !n.shadowRoot.walkShadowIncluding(yield) {
		return false
	}
	for _, ch := range n.ChildNodes() {
		if !ch.walkShadowIncluding(yield) {
			return false
		}
	}
	return true
}

// isShadowIncludingInclusiveAncestorOf is true if n is an inclusive ancestor
// of other, or of a host other is contained in.
func (n *Node) isShadowIncludingInclusiveAncestorOf(other *Node) bool {
	for other != nil {
		if n.IsInclusiveAncestorOf(other) {
			return true
		}
		other = other.Root().host
	}
	return false
}

// isHostIncludingInclusiveAncestorOf is the relation used by pre-insertion
// validation.
func (n *Node) isHostIncludingInclusiveAncestorOf(other *Node) bool {
	return n.isShadowIncludingInclusiveAncestorOf(other)
}

// Length returns the node length: 0 for doctypes, the number of UTF-16 code
// units for character data and processing instructions, the number of
// children otherwise.
func (n *Node) Length() int {
	switch n.kind {
	case DocumentTypeNode:
		return 0
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return utf16Len(n.data)
	}
	return n.ChildCount()
}
