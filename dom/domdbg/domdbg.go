/*
Package domdbg implements helpers to debug a DOM tree.

Print renders a tree as indented text, ToGraphViz as a GraphViz (DOT) digraph.
Both include shadow trees; the digraph additionally shows slot assignments and
the boundary points of live ranges.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/domcore/dom"
	tp "github.com/xlab/treeprint"
)

// Print returns an indented text rendering of the tree rooted at n. Shadow
// roots appear as the first child of their hosts.
func Print(n *dom.Node) string {
	printer := tp.New()
	printNode(printer, n)
	return printer.String()
}

func printNode(printer tp.Tree, n *dom.Node) {
	shadow := shadowRootOf(n)
	if !n.HasChildNodes() && shadow == nil {
		printer.AddNode(label(n))
		return
	}
	branch := printer.AddBranch(label(n))
	if shadow != nil {
		printNode(branch, shadow)
	}
	for _, ch := range n.ChildNodes() {
		printNode(branch, ch)
	}
}

// shadowRootOf finds the shadow root of a host, including closed ones.
func shadowRootOf(n *dom.Node) *dom.Node {
	if n.Kind() != dom.ElementNode {
		return nil
	}
	return dom.ShadowRootOf(n)
}

func label(n *dom.Node) string {
	switch n.Kind() {
	case dom.ElementNode:
		var b strings.Builder
		b.WriteString("<" + n.NodeName())
		for _, a := range n.Attributes() {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		b.WriteString(">")
		return b.String()
	case dom.TextNode, dom.CDATASectionNode, dom.CommentNode, dom.ProcessingInstructionNode:
		return fmt.Sprintf("%s %q", n.NodeName(), n.Data())
	case dom.DocumentFragmentNode:
		if n.IsShadowRoot() {
			return "#shadow-root (" + n.Mode().String() + ")"
		}
	case dom.DocumentTypeNode:
		return "<!DOCTYPE " + n.NodeName() + ">"
	}
	return n.NodeName()
}

// --- GraphViz ---------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	RangeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM, a Writer, and an optional list of ranges to draw.
//
// Edges are drawn as follows:
//
//     - solid: parent to child
//     - dashed: host to shadow root
//     - dotted: slot to assigned slottable
//
func ToGraphViz(root *dom.Node, w io.Writer, ranges []*dom.Range) {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.RangeTmpl = template.Must(template.New("range").Parse(rangeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		panic(err)
	}
	dict := make(map[*dom.Node]string, 4096)
	nodes(root, w, dict, &gparams)
	slotEdges(dict, w, &gparams)
	for i, r := range ranges {
		drawRange(i, r, w, dict, &gparams)
	}
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a DOM node and a testing.T, it will
// create a Graphiviz image of the DOM tree under `root` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(root *dom.Node, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	ToGraphViz(root, tmpfile, nil)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    *dom.Node
	Name string
}

func nodes(n *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) {
	domNode(n, w, dict, gparams)
	if shadow := shadowRootOf(n); shadow != nil {
		nodes(shadow, w, dict, gparams)
		domEdge(n, shadow, "dashed", w, dict, gparams)
	}
	for _, ch := range n.ChildNodes() {
		nodes(ch, w, dict, gparams)
		domEdge(n, ch, "solid", w, dict, gparams)
	}
}

func domNode(n *dom.Node, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) {
	name := dict[n]
	if name == "" {
		l := len(dict) + 1
		name = fmt.Sprintf("node%05d", l)
		dict[n] = name
	}
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		panic(err)
	}
}

type edge struct {
	N1, N2 node
	Style  string
}

func domEdge(n1 *dom.Node, n2 *dom.Node, style string, w io.Writer, dict map[*dom.Node]string,
	gparams *graphParamsType) {
	//
	e := edge{node{n1, dict[n1]}, node{n2, dict[n2]}, style}
	if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
		panic(err)
	}
}

// slotEdges connects drawn slots to the drawn nodes assigned to them.
// Slots are visited in drawing order.
func slotEdges(dict map[*dom.Node]string, w io.Writer, gparams *graphParamsType) {
	var slots []*dom.Node
	for n := range dict {
		if dom.NodeIsSlot(n) {
			slots = append(slots, n)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return dict[slots[i]] < dict[slots[j]] })
	for _, n := range slots {
		for _, assigned := range n.AssignedNodes(false) {
			if _, ok := dict[assigned]; ok {
				domEdge(n, assigned, "dotted", w, dict, gparams)
			}
		}
	}
}

type rangeMark struct {
	Name       string
	Start, End string
	StartLabel string
	EndLabel   string
}

func drawRange(i int, r *dom.Range, w io.Writer, dict map[*dom.Node]string, gparams *graphParamsType) {
	start, ok1 := dict[r.StartContainer()]
	end, ok2 := dict[r.EndContainer()]
	if !ok1 || !ok2 {
		return
	}
	mark := rangeMark{
		Name:       fmt.Sprintf("range%03d", i+1),
		Start:      start,
		End:        end,
		StartLabel: fmt.Sprintf("start@%d", r.StartOffset()),
		EndLabel:   fmt.Sprintf("end@%d", r.EndOffset()),
	}
	if err := gparams.RangeTmpl.Execute(w, mark); err != nil {
		panic(err)
	}
}

func shortText(n *dom.Node) string {
	data := n.Data()
	s := "\"\\\""
	if r := []rune(data); len(r) > 10 {
		s += string(r[:10]) + "...\\\"\""
	} else {
		s += data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.NodeName "#text" "#comment" "#cdata-section" }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if .N.IsShadowRoot }}
{{ .Name }}	[ label="#shadow-root" shape=hexagon style=filled fillcolor=lightgoldenrod1 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.NodeName }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1 style={{ .Style }}] ;
`

const rangeTmpl = `{{ .Name }} [ label="{{ .Name }}" shape=note style=filled fillcolor=mistyrose ] ;
{{ .Name }} -> {{ .Start }} [ label="{{ .StartLabel }}" color=red dir=none style="dashed" ] ;
{{ .Name }} -> {{ .End }} [ label="{{ .EndLabel }}" color=red dir=none style="dashed" ] ;
`
