package docxscrub

import "strings"

// PartRole classifies a container entry by its path inside the package.
type PartRole int

const (
	PartPassThrough PartRole = iota
	PartDocument
	PartHeader
	PartFooter
	PartFootnotes
	PartEndnotes
	PartComments
)

// partPattern maps a WordprocessingML path shape to a role. An exact
// pattern matches the whole entry name; otherwise prefix and suffix must
// both match.
type partPattern struct {
	exact  string
	prefix string
	suffix string
	role   PartRole
}

// Well-known text-bearing part paths. Classification is purely by name;
// entry content is never inspected. Anything the table does not
// positively recognize stays pass-through.
var partPatterns = []partPattern{
	{exact: "word/document.xml", role: PartDocument},
	{prefix: "word/header", suffix: ".xml", role: PartHeader},
	{prefix: "word/footer", suffix: ".xml", role: PartFooter},
	{exact: "word/footnotes.xml", role: PartFootnotes},
	{exact: "word/endnotes.xml", role: PartEndnotes},
	{exact: "word/comments.xml", role: PartComments},
}

// ClassifyPart returns the role for a container entry name.
func ClassifyPart(name string) PartRole {
	for _, p := range partPatterns {
		if p.exact != "" {
			if name == p.exact {
				return p.role
			}
			continue
		}
		if strings.HasPrefix(name, p.prefix) && strings.HasSuffix(name, p.suffix) {
			return p.role
		}
	}
	return PartPassThrough
}

// TextBearing reports whether entries with this role are rewritten.
func (r PartRole) TextBearing() bool { return r != PartPassThrough }

// rootLocal returns the expected local name of the part's root element.
func (r PartRole) rootLocal() string {
	switch r {
	case PartDocument:
		return "document"
	case PartHeader:
		return "hdr"
	case PartFooter:
		return "ftr"
	case PartFootnotes:
		return "footnotes"
	case PartEndnotes:
		return "endnotes"
	case PartComments:
		return "comments"
	default:
		return ""
	}
}

func (r PartRole) String() string {
	switch r {
	case PartPassThrough:
		return "pass-through"
	case PartDocument:
		return "document"
	case PartHeader:
		return "header"
	case PartFooter:
		return "footer"
	case PartFootnotes:
		return "footnotes"
	case PartEndnotes:
		return "endnotes"
	case PartComments:
		return "comments"
	default:
		return "unknown"
	}
}
