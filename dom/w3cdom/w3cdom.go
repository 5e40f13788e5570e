/*
Package w3cdom defines interface types for the W3C Document Object Model
bindings of package dom.

Clients which script a DOM, e.g. test harnesses or language bindings, may
program against these interfaces instead of the concrete types. Package dom
satisfies all of them; the interfaces use the concrete dom types for
arguments, as the DOM algorithms depend on node identity.

See also https://dom.spec.whatwg.org/

Status

Early draft—API may change frequently. Please stay patient.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom

import (
	"iter"
	"time"

	"github.com/npillmayer/domcore/dom"
)

// EventTarget represents W3C-type EventTarget
type EventTarget interface {
	AddEventListener(string, dom.EventListener, ...dom.ListenerOption)
	RemoveEventListener(string, dom.EventListener, ...dom.ListenerOption)
	DispatchEvent(*dom.Event) (bool, error)
}

// Node represents W3C-type Node
type Node interface {
	EventTarget
	Kind() dom.NodeKind                   // type of the node (ElementNode, TextNode, etc.)
	NodeName() string                     // node name output depends on the node's type
	OwnerDocument() *dom.Node             // node document
	Parent() *dom.Node                    // get the parent node, if any
	ParentElement() *dom.Node             // get the parent node if it is an element
	HasChildNodes() bool                  // check for existence of sub-nodes
	ChildNodes() []*dom.Node              // get a list of all children-nodes
	FirstChild() *dom.Node                // get the first children-node
	LastChild() *dom.Node                 // get the last children-node
	PreviousSibling() *dom.Node           // get the Node's previous sibling or nil if first
	NextSibling() *dom.Node               // get the Node's next sibling or nil if last
	Root() *dom.Node                      // get the root of the node's tree
	IsConnected() bool                    // is the node's shadow-including root a document?
	Contains(*dom.Node) bool              // inclusive descendant check
	CompareDocumentPosition(*dom.Node) uint16
	TextContent() string // get text from node and all descendents
	SetTextContent(string)
	Normalize()
	CloneNode(bool) (*dom.Node, error)
	AppendChild(*dom.Node) (*dom.Node, error)
	InsertBefore(*dom.Node, *dom.Node) (*dom.Node, error)
	RemoveChild(*dom.Node) (*dom.Node, error)
	ReplaceChild(*dom.Node, *dom.Node) (*dom.Node, error)
}

// ParentNode represents the W3C ParentNode mixin.
type ParentNode interface {
	Append(...*dom.Node) error
	Prepend(...*dom.Node) error
	ReplaceChildren(...*dom.Node) error
}

// ChildNode represents the W3C ChildNode mixin.
type ChildNode interface {
	Remove()
}

// Element represents W3C-type Element
type Element interface {
	Node
	ParentNode
	ChildNode
	Attributes() []dom.Attr
	GetAttribute(string) (string, bool)
	HasAttribute(string) bool
	SetAttribute(string, string) error
	RemoveAttribute(string)
	ToggleAttribute(string) (bool, error)
	AttachShadow(dom.ShadowRootMode) (*dom.Node, error)
	ShadowRoot() *dom.Node
	AssignedSlot() *dom.Node
}

// CharacterData represents W3C-type CharacterData. Offsets are counted in
// UTF-16 code units.
type CharacterData interface {
	Node
	ChildNode
	Data() string
	SetData(string) error
	Length() int
	SubstringData(int, int) (string, error)
	AppendData(string) error
	InsertData(int, string) error
	DeleteData(int, int) error
	ReplaceData(int, int, string) error
}

// Text represents W3C-type Text
type Text interface {
	CharacterData
	SplitText(int) (*dom.Node, error)
	WholeText() string
}

// Document represents W3C-type Document
type Document interface {
	Node
	ParentNode
	CreateElement(string) *dom.Node
	CreateTextNode(string) *dom.Node
	CreateCDATASection(string) *dom.Node
	CreateComment(string) *dom.Node
	CreateProcessingInstruction(string, string) *dom.Node
	CreateDocumentFragment() *dom.Node
	CreateDocumentType(string) *dom.Node
	CreateRange() *dom.Range
	CreateEvent() *dom.Event
	AdoptNode(*dom.Node) (*dom.Node, error)
}

// Slot represents the slot part of W3C-type HTMLSlotElement
type Slot interface {
	Element
	AssignedNodes(bool) []*dom.Node
}

// Event represents W3C-type Event
type Event interface {
	Type() string
	Target() dom.EventTarget
	RelatedTarget() dom.EventTarget
	CurrentTarget() dom.EventTarget
	ComposedPath() []dom.EventTarget
	EventPhase() dom.EventPhase
	StopPropagation()
	StopImmediatePropagation()
	Bubbles() bool
	Cancelable() bool
	PreventDefault()
	DefaultPrevented() bool
	Composed() bool
	IsTrusted() bool
	TimeStamp() time.Time
	InitEvent(string, bool, bool)
}

// AbstractRange represents W3C-type AbstractRange
type AbstractRange interface {
	StartContainer() *dom.Node
	StartOffset() int
	EndContainer() *dom.Node
	EndOffset() int
	Collapsed() bool
}

// Range represents W3C-type Range
type Range interface {
	AbstractRange
	CommonAncestorContainer() *dom.Node
	SetStart(*dom.Node, int) error
	SetEnd(*dom.Node, int) error
	SetStartBefore(*dom.Node) error
	SetStartAfter(*dom.Node) error
	SetEndBefore(*dom.Node) error
	SetEndAfter(*dom.Node) error
	Collapse(bool)
	SelectNode(*dom.Node) error
	SelectNodeContents(*dom.Node) error
	CompareBoundaryPoints(int, *dom.Range) (dom.Position, error)
	DeleteContents()
	ExtractContents() (*dom.Node, error)
	CloneContents() (*dom.Node, error)
	InsertNode(*dom.Node) error
	SurroundContents(*dom.Node) error
	CloneRange() *dom.Range
	Detach()
	IsPointInRange(*dom.Node, int) (bool, error)
	ComparePoint(*dom.Node, int) (dom.Position, error)
	IntersectsNode(*dom.Node) bool
	String() string
}

// MutationObserver represents W3C-type MutationObserver
type MutationObserver interface {
	Observe(*dom.Node, dom.MutationObserverInit) error
	Disconnect()
	TakeRecords() []*dom.MutationRecord
}

// MutationRecord represents W3C-type MutationRecord
type MutationRecord interface {
	Type() string
	Target() *dom.Node
	AddedNodes() []*dom.Node
	RemovedNodes() []*dom.Node
	PreviousSibling() *dom.Node
	NextSibling() *dom.Node
	AttributeName() (string, bool)
	OldValue() (string, bool)
}

// Descendants iterates over the descendants of any node in tree order.
func Descendants(n Node) iter.Seq[*dom.Node] {
	return func(yield func(*dom.Node) bool) {
		for _, ch := range n.ChildNodes() {
			if !yield(ch) {
				return
			}
			for d := range Descendants(ch) {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// Elements filters the element children of a node, as W3C ParentNode.children.
func Elements(n Node) []*dom.Node {
	return dom.Filter(n.ChildNodes(), dom.NodeIsElement)
}
