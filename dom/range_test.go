package dom

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildParagraphsForTest creates <div><p>"Hello"</p><p>"World"</p></div> inside body.
func buildParagraphsForTest(t *testing.T) (doc, div, text1, text2 *Node) {
	doc, _, body := buildDocForTest(t, NewAgent())
	div = doc.CreateElement("div")
	p1, p2 := doc.CreateElement("p"), doc.CreateElement("p")
	text1, text2 = doc.CreateTextNode("Hello"), doc.CreateTextNode("World")
	p1.AppendChild(text1)
	p2.AppendChild(text2)
	div.Append(p1, p2)
	_, err := body.AppendChild(div)
	require.NoError(t, err)
	return
}

func TestRangeFollowsInsertData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc := NewAgent().NewDocument()
	text := doc.CreateTextNode("hello world")
	r := doc.CreateRange()
	require.NoError(t, r.SetStart(text, 0))
	require.NoError(t, r.SetEnd(text, 5))
	assert.Equal(t, "hello", r.String())
	require.NoError(t, text.InsertData(0, "XX"))
	assert.Equal(t, 7, r.EndOffset())
	assert.Equal(t, "XXhello", r.String())
	require.NoError(t, text.DeleteData(0, 4))
	assert.Equal(t, 0, r.StartOffset())
	assert.Equal(t, 3, r.EndOffset())
	assert.Equal(t, "llo", r.String())
	r.Detach()
	text.InsertData(0, "abc")
	assert.Equal(t, 3, r.EndOffset(), "detached range must not follow mutations")
}

func TestRangeComparePointErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, html, body := buildDocForTest(t, NewAgent())
	r := doc.CreateRange()
	require.NoError(t, r.SelectNodeContents(body))
	stranger := NewAgent().NewDocument().CreateElement("x")
	_, err := r.ComparePoint(stranger, 0)
	assert.True(t, errors.Is(err, ErrWrongDocument), "expected WrongDocumentError, is %v", err)
	_, err = r.ComparePoint(doc.FirstChild(), 0)
	assert.True(t, errors.Is(err, ErrInvalidNodeType), "expected InvalidNodeTypeError, is %v", err)
	_, err = r.ComparePoint(html, 5)
	assert.True(t, errors.Is(err, ErrIndexSize), "expected IndexSizeError, is %v", err)
	pos, err := r.ComparePoint(html, 0)
	require.NoError(t, err)
	assert.Equal(t, Before, pos)
	pos, _ = r.ComparePoint(body, 0)
	assert.Equal(t, Equal, pos)
	pos, _ = r.ComparePoint(doc, 2)
	assert.Equal(t, After, pos)
	//
	in, err := r.IsPointInRange(stranger, 0)
	assert.NoError(t, err)
	assert.False(t, in)
	_, err = r.CompareBoundaryPoints(7, r)
	assert.True(t, errors.Is(err, ErrNotSupported), "expected NotSupportedError, is %v", err)
	assert.True(t, errors.Is(r.SetStart(html, 9), ErrIndexSize))
	assert.True(t, errors.Is(r.SetEnd(doc.FirstChild(), 0), ErrInvalidNodeType))
}

func TestPositionIsTotalOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, _, _ := buildParagraphsForTest(t)
	var points []BoundaryPoint
	for n := range doc.shadowIncludingInclusiveDescendants() {
		for offset := 0; offset <= n.Length(); offset++ {
			points = append(points, BoundaryPoint{n, offset})
		}
	}
	for _, p := range points {
		for _, q := range points {
			pq, qp := position(p, q), position(q, p)
			if (pq == Equal) != (p == q) {
				t.Fatalf("expected %s and %s to be equal only if identical, is %s", p, q, pq)
			}
			if pq != qp.invert() {
				t.Fatalf("expected position(%s,%s)=%s to invert position(%s,%s)=%s", p, q, pq, q, p, qp)
			}
		}
	}
	for i, p := range points {
		for _, q := range points[i+1:] {
			for _, s := range points {
				if position(p, q) == Before && position(q, s) == Before && position(p, s) != Before {
					t.Fatalf("expected order to be transitive for %s < %s < %s", p, q, s)
				}
			}
		}
	}
}

func TestRangeStartNeverAfterEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, div, text1, text2 := buildParagraphsForTest(t)
	r := doc.CreateRange()
	check := func(step string) {
		t.Helper()
		if position(r.start, r.end) == After {
			t.Errorf("%s: expected start not after end, range is %s", step, r.Describe())
		}
	}
	r.SetStart(text2, 3)
	check("set start")
	r.SetEnd(text1, 1) // before start: collapses
	check("set end before start")
	assert.True(t, r.Collapsed())
	r.SetStart(text1, 2)
	r.SetEnd(text2, 4)
	check("span paragraphs")
	text1.Parent().Remove()
	check("remove start container")
	assert.Equal(t, BoundaryPoint{div, 0}, r.start)
	text2.SplitText(1)
	check("split text")
	r.SelectNodeContents(div)
	div.ReplaceChildren()
	check("replace children")
	assert.True(t, r.Collapsed())
}

func TestRangeFollowsTreeMutations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, body := buildDocForTest(t, NewAgent())
	a, b, c := doc.CreateElement("a"), doc.CreateElement("b"), doc.CreateElement("c")
	body.Append(a, b, c)
	r := doc.CreateRange()
	r.SetStart(body, 1)
	r.SetEnd(body, 3)
	a.Remove()
	assert.Equal(t, BoundaryPoint{body, 0}, r.Start())
	assert.Equal(t, BoundaryPoint{body, 2}, r.End())
	body.InsertBefore(a, b)
	assert.Equal(t, BoundaryPoint{body, 0}, r.Start(), "insertion at the boundary offset keeps the start")
	assert.Equal(t, BoundaryPoint{body, 3}, r.End())
	inner := doc.CreateRange()
	inner.SelectNodeContents(b)
	b.Remove()
	assert.Equal(t, BoundaryPoint{body, 1}, inner.Start())
	assert.True(t, inner.Collapsed())
}

func TestSplitTextMovesBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, body := buildDocForTest(t, NewAgent())
	text := doc.CreateTextNode("Hello World")
	body.AppendChild(text)
	r := doc.CreateRange()
	r.SetStart(text, 8)
	r.SetEnd(text, 11)
	after := doc.CreateRange()
	after.SetStart(body, 1)
	rest, err := text.SplitText(6)
	require.NoError(t, err)
	assert.Equal(t, "Hello ", text.Data())
	assert.Equal(t, "World", rest.Data())
	assert.Equal(t, BoundaryPoint{rest, 2}, r.Start())
	assert.Equal(t, BoundaryPoint{rest, 5}, r.End())
	assert.Equal(t, "rld", r.String())
	assert.Equal(t, BoundaryPoint{body, 2}, after.Start(), "boundary right after the split node moves past the new node")
	_, err = text.SplitText(99)
	assert.True(t, errors.Is(err, ErrIndexSize))
}

func TestDeleteContents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, div, text1, text2 := buildParagraphsForTest(t)
	r := doc.CreateRange()
	r.SetStart(text1, 2)
	r.SetEnd(text1, 2)
	records := 0
	mo := doc.Agent().NewMutationObserver(func(recs []*MutationRecord, _ *MutationObserver) error {
		records += len(recs)
		return nil
	})
	mo.Observe(div, MutationObserverInit{ChildList: true, CharacterData: true, Subtree: true})
	r.DeleteContents()
	assert.Equal(t, "Hello", text1.Data(), "collapsed range deletes nothing")
	assert.Empty(t, mo.TakeRecords())
	//
	r.SetEnd(text2, 3)
	r.DeleteContents()
	assert.Equal(t, "He", text1.Data())
	assert.Equal(t, "ld", text2.Data())
	assert.Equal(t, 2, div.ChildCount())
	assert.Equal(t, BoundaryPoint{div, 1}, r.Start())
	assert.True(t, r.Collapsed())
	//
	r.SelectNodeContents(div)
	r.DeleteContents()
	assert.False(t, div.HasChildNodes())
	assert.Equal(t, BoundaryPoint{div, 0}, r.Start())
}

func TestExtractAndCloneContents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, div, text1, text2 := buildParagraphsForTest(t)
	r := doc.CreateRange()
	r.SetStart(text1, 2)
	r.SetEnd(text2, 3)
	clone, err := r.CloneContents()
	require.NoError(t, err)
	assert.Equal(t, "lloWor", clone.TextContent())
	assert.Equal(t, 2, clone.ChildCount())
	assert.Equal(t, "Hello", text1.Data(), "cloning must not modify the source")
	//
	fragment, err := r.ExtractContents()
	require.NoError(t, err)
	assert.Equal(t, "lloWor", fragment.TextContent())
	require.Equal(t, 2, fragment.ChildCount())
	assert.Equal(t, "p", fragment.FirstChild().NodeName())
	assert.Equal(t, "He", text1.Data())
	assert.Equal(t, "ld", text2.Data())
	assert.Equal(t, BoundaryPoint{div, 1}, r.Start())
	assert.True(t, r.Collapsed())
	//
	r.SetStart(text2, 0)
	r.SetEnd(text2, 1)
	fragment, err = r.ExtractContents()
	require.NoError(t, err)
	assert.Equal(t, "l", fragment.TextContent())
	assert.Equal(t, "d", text2.Data())
	//
	r.SelectNodeContents(doc)
	_, err = r.ExtractContents()
	assert.True(t, errors.Is(err, ErrHierarchyRequest), "expected HierarchyRequestError for doctype, is %v", err)
	_, err = r.CloneContents()
	assert.True(t, errors.Is(err, ErrHierarchyRequest))
	assert.Equal(t, 2, doc.ChildCount())
}

func TestInsertNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, body := buildDocForTest(t, NewAgent())
	p := doc.CreateElement("p")
	text := doc.CreateTextNode("Hello")
	p.AppendChild(text)
	body.AppendChild(p)
	r := doc.CreateRange()
	r.SetStart(text, 2)
	r.Collapse(true)
	span := doc.CreateElement("span")
	require.NoError(t, r.InsertNode(span))
	require.Equal(t, 3, p.ChildCount())
	assert.Equal(t, "He", p.ChildAt(0).Data())
	assert.Equal(t, span, p.ChildAt(1))
	assert.Equal(t, "llo", p.ChildAt(2).Data())
	assert.Equal(t, BoundaryPoint{text, 2}, r.Start())
	assert.Equal(t, BoundaryPoint{p, 2}, r.End(), "collapsed range grows past the inserted node")
	//
	comment := doc.CreateComment("c")
	body.AppendChild(comment)
	r.SetStart(comment, 0)
	err := r.InsertNode(doc.CreateElement("x"))
	assert.True(t, errors.Is(err, ErrHierarchyRequest), "expected HierarchyRequestError, is %v", err)
	r.SelectNode(p)
	err = r.InsertNode(body)
	assert.True(t, errors.Is(err, ErrHierarchyRequest), "expected HierarchyRequestError, is %v", err)
}

func TestSurroundContents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, body := buildDocForTest(t, NewAgent())
	p := doc.CreateElement("p")
	text := doc.CreateTextNode("Hello World")
	p.AppendChild(text)
	body.AppendChild(p)
	r := doc.CreateRange()
	r.SetStart(text, 0)
	r.SetEnd(text, 5)
	b := doc.CreateElement("b")
	b.AppendChild(doc.CreateTextNode("dropped"))
	require.NoError(t, r.SurroundContents(b))
	assert.Equal(t, "Hello", b.TextContent())
	assert.Equal(t, "Hello World", p.TextContent())
	assert.Equal(t, p, r.StartContainer())
	assert.Equal(t, b, p.ChildAt(r.StartOffset()))
	assert.Equal(t, r.StartOffset()+1, r.EndOffset())
	//
	err := r.SurroundContents(doc.CreateDocumentFragment())
	assert.True(t, errors.Is(err, ErrInvalidNodeType))
	r.SetStart(b.FirstChild(), 1)
	r.SetEnd(p.LastChild(), 2)
	err = r.SurroundContents(doc.CreateElement("i"))
	assert.True(t, errors.Is(err, ErrInvalidState), "expected InvalidStateError for partially contained b, is %v", err)
}

func TestIntersectsAndCommonAncestor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, div, text1, text2 := buildParagraphsForTest(t)
	r := doc.CreateRange()
	r.SetStart(text1, 1)
	r.SetEnd(text1, 3)
	assert.Equal(t, text1, r.CommonAncestorContainer())
	assert.True(t, r.IntersectsNode(text1.Parent()))
	assert.False(t, r.IntersectsNode(text2.Parent()))
	assert.True(t, r.IntersectsNode(doc))
	r.SetEnd(text2, 1)
	assert.Equal(t, div, r.CommonAncestorContainer())
	other := r.CloneRange()
	other.Collapse(false)
	pos, err := r.CompareBoundaryPoints(StartToEnd, other)
	require.NoError(t, err)
	assert.Equal(t, Equal, pos)
	pos, _ = r.CompareBoundaryPoints(StartToStart, other)
	assert.Equal(t, Before, pos)
}

func TestStaticRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, text1, _ := buildParagraphsForTest(t)
	_, err := NewStaticRange(StaticRangeInit{StartContainer: doc.FirstChild(), EndContainer: text1})
	assert.True(t, errors.Is(err, ErrInvalidNodeType))
	sr, err := NewStaticRange(StaticRangeInit{
		StartContainer: text1, StartOffset: 1,
		EndContainer: text1, EndOffset: 4,
	})
	require.NoError(t, err)
	assert.True(t, sr.IsValid())
	text1.SetData("H")
	assert.Equal(t, 4, sr.EndOffset(), "static ranges do not follow mutations")
	assert.False(t, sr.IsValid())
	_, err = sr.ToRange()
	assert.True(t, errors.Is(err, ErrInvalidState))
}
