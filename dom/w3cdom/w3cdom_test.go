package w3cdom_test

import (
	"testing"

	"github.com/npillmayer/domcore/dom"
	"github.com/npillmayer/domcore/dom/w3cdom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var (
	_ w3cdom.Document         = (*dom.Node)(nil)
	_ w3cdom.Element          = (*dom.Node)(nil)
	_ w3cdom.Text             = (*dom.Node)(nil)
	_ w3cdom.Slot             = (*dom.Node)(nil)
	_ w3cdom.Event            = (*dom.Event)(nil)
	_ w3cdom.AbstractRange    = (*dom.Range)(nil)
	_ w3cdom.AbstractRange    = (*dom.StaticRange)(nil)
	_ w3cdom.Range            = (*dom.Range)(nil)
	_ w3cdom.MutationObserver = (*dom.MutationObserver)(nil)
	_ w3cdom.MutationRecord   = (*dom.MutationRecord)(nil)
)

func TestScriptingThroughInterfaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	var doc w3cdom.Document = dom.NewAgent().NewDocument()
	var html w3cdom.Element = doc.CreateElement("html")
	doc.AppendChild(html.(*dom.Node))
	html.Append(doc.CreateComment("c"), doc.CreateElement("head"), doc.CreateElement("body"))
	var text w3cdom.Text = doc.CreateTextNode("Hello")
	html.LastChild().AppendChild(text.(*dom.Node))
	//
	elements := w3cdom.Elements(html)
	assert.Len(t, elements, 2)
	var names []string
	for n := range w3cdom.Descendants(doc) {
		names = append(names, n.NodeName())
	}
	assert.Equal(t, []string{"html", "#comment", "head", "body", "#text"}, names)
	//
	var r w3cdom.Range = doc.CreateRange()
	assert.NoError(t, r.SelectNodeContents(text.(*dom.Node)))
	assert.Equal(t, "Hello", r.String())
	assert.Equal(t, 5, text.Length())
}
