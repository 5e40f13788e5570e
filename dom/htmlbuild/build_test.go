package htmlbuild

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/domcore/dom"
	"github.com/npillmayer/domcore/dom/domdbg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var myhtml = `<!DOCTYPE html>
<html><head><title>Test</title></head><body><div id="host"><template shadowrootmode="closed"><slot></slot></template><span>Hi</span></div><p class="x">a<!--c--></p></body></html>`

func TestParseDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.htmlbuild")
	defer teardown()
	//
	doc, err := Parse(dom.NewAgent(), strings.NewReader(myhtml))
	require.NoError(t, err)
	t.Logf("\n%s", domdbg.Print(doc))
	require.Equal(t, 2, doc.ChildCount())
	assert.Equal(t, dom.DocumentTypeNode, doc.FirstChild().Kind())
	assert.Equal(t, "html", doc.FirstChild().NodeName())
	root := doc.LastChild()
	assert.Equal(t, "html", root.NodeName())
	body := root.LastChild()
	require.Equal(t, "body", body.NodeName())
	require.Equal(t, 2, body.ChildCount())
	p := body.LastChild()
	class, ok := p.GetAttribute("class")
	assert.True(t, ok)
	assert.Equal(t, "x", class)
	assert.Equal(t, "a", p.TextContent())
	assert.Equal(t, dom.CommentNode, p.LastChild().Kind())
	assert.True(t, p.IsConnected())
}

func TestDeclarativeShadowRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.htmlbuild")
	defer teardown()
	//
	doc, err := Parse(dom.NewAgent(), strings.NewReader(myhtml))
	require.NoError(t, err)
	host := doc.LastChild().LastChild().FirstChild()
	require.Equal(t, "div", host.NodeName())
	assert.Nil(t, host.ShadowRoot(), "closed shadow root must not be exposed")
	shadow := dom.ShadowRootOf(host)
	require.NotNil(t, shadow)
	assert.Equal(t, dom.ShadowRootClosed, shadow.Mode())
	require.Equal(t, 1, shadow.ChildCount())
	slot := shadow.FirstChild()
	assert.Equal(t, "slot", slot.NodeName())
	require.Equal(t, 1, host.ChildCount(), "template must not remain in the light tree")
	span := host.FirstChild()
	assert.Equal(t, []*dom.Node{span}, slot.AssignedNodes(false))
}

func TestSecondShadowTemplateStaysTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.htmlbuild")
	defer teardown()
	//
	src := `<div><template shadowrootmode="open"></template><template shadowrootmode="open"><b></b></template></div>`
	doc, err := Parse(dom.NewAgent(), strings.NewReader(src))
	require.NoError(t, err)
	div := doc.LastChild().LastChild().FirstChild()
	require.Equal(t, "div", div.NodeName())
	assert.NotNil(t, div.ShadowRoot())
	require.Equal(t, 1, div.ChildCount())
	template := div.FirstChild()
	assert.Equal(t, "template", template.NodeName())
	assert.Equal(t, 1, template.ChildCount())
}

func TestParseFragment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.htmlbuild")
	defer teardown()
	//
	doc, err := Parse(dom.NewAgent(), strings.NewReader(myhtml))
	require.NoError(t, err)
	body := doc.LastChild().LastChild()
	fragment, err := ParseFragment(body, strings.NewReader("<b>x</b>y"))
	require.NoError(t, err)
	assert.Equal(t, dom.DocumentFragmentNode, fragment.Kind())
	assert.Equal(t, doc, fragment.OwnerDocument())
	require.Equal(t, 2, fragment.ChildCount())
	assert.Equal(t, "b", fragment.FirstChild().NodeName())
	assert.Equal(t, "y", fragment.LastChild().Data())
	_, err = body.AppendChild(fragment)
	require.NoError(t, err)
	assert.Equal(t, 0, fragment.ChildCount())
	assert.Equal(t, 4, body.ChildCount())
	//
	_, err = ParseFragment(fragment, strings.NewReader("<b>x</b>"))
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.htmlbuild")
	defer teardown()
	//
	agent := dom.NewAgent()
	_, err := Build(agent, &html.Node{Type: html.ErrorNode})
	if !errors.Is(err, ErrUnsupportedNode) {
		t.Errorf("expected ErrUnsupportedNode, is %v", err)
	}
	_, err = BuildDocument(agent, &html.Node{Type: html.ElementNode, Data: "p"})
	if !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, is %v", err)
	}
	n, err := Build(agent, &html.Node{Type: html.ElementNode, Data: "p"})
	if err != nil || n.NodeName() != "p" || n.Parent() != nil {
		t.Errorf("expected detached element p, is %v (%v)", n, err)
	}
}
