package docxscrub

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// WordprocessingML main namespace, transitional and strict variants.
const (
	nsWordMain   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWordStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// runTextQuery selects text elements directly under run elements.
// Matching by local name keeps the selector independent of whatever
// prefix the producer bound the main namespace to.
var runTextQuery = xpath.MustCompile("//*[local-name()='r']/*[local-name()='t']")

// Rewrite filters run text inside one text-bearing part.
//
// The payload is parsed into a DOM, every text node directly under a run
// element is filtered through the charset, and the tree is serialized
// back. Nothing else is mutated: element order, attribute order,
// namespace prefixes, and text outside runs all survive. A text node
// whose content is entirely removed becomes an empty node; it is never
// deleted from the tree.
//
// Rewrite fails with ErrMalformedXML if the payload does not parse, and
// with ErrUnsupportedPart if the root element does not match the role.
// Callers are expected to degrade ErrUnsupportedPart to a verbatim copy.
//
// The serialized form is not guaranteed to be byte-identical to the
// input, but rewriting the output again yields the same bytes.
func Rewrite(xmlBytes []byte, role PartRole, set *Charset) ([]byte, Tally, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(xmlBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	root := rootElement(doc)
	if root == nil {
		return nil, nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
	}
	if want := role.rootLocal(); want != "" && root.Data != want {
		return nil, nil, fmt.Errorf("%w: root element <%s>, want <%s>", ErrUnsupportedPart, elementName(root), want)
	}

	tally := Tally{}
	for _, t := range xmlquery.QuerySelectorAll(doc, runTextQuery) {
		if t.NamespaceURI != "" && t.NamespaceURI != nsWordMain && t.NamespaceURI != nsWordStrict {
			continue // math runs and other foreign vocabularies
		}
		for child := t.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.TextNode && child.Type != xmlquery.CharDataNode {
				continue
			}
			child.Data = set.filterTally(child.Data, tally)
		}
	}
	return []byte(doc.OutputXML(false)), tally, nil
}

// rootElement returns the document's root element, skipping the XML
// declaration, comments, and processing instructions.
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

func elementName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}
