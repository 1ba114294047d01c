package docxscrub

import "testing"

func TestClassifyPart(t *testing.T) {
	tests := []struct {
		name string
		role PartRole
	}{
		{"word/document.xml", PartDocument},
		{"word/header1.xml", PartHeader},
		{"word/header12.xml", PartHeader},
		{"word/footer1.xml", PartFooter},
		{"word/footnotes.xml", PartFootnotes},
		{"word/endnotes.xml", PartEndnotes},
		{"word/comments.xml", PartComments},

		// Everything else must stay pass-through, including entries
		// that merely live near the text-bearing ones.
		{"[Content_Types].xml", PartPassThrough},
		{"_rels/.rels", PartPassThrough},
		{"word/_rels/document.xml.rels", PartPassThrough},
		{"word/styles.xml", PartPassThrough},
		{"word/settings.xml", PartPassThrough},
		{"word/numbering.xml", PartPassThrough},
		{"word/fontTable.xml", PartPassThrough},
		{"word/theme/theme1.xml", PartPassThrough},
		{"word/media/image1.png", PartPassThrough},
		{"word/embeddings/oleObject1.bin", PartPassThrough},
		{"word/commentsExtended.xml", PartPassThrough},
		{"docProps/core.xml", PartPassThrough},
		{"docProps/app.xml", PartPassThrough},
		{"customXml/item1.xml", PartPassThrough},
		{"document.xml", PartPassThrough},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPart(tt.name); got != tt.role {
				t.Fatalf("ClassifyPart(%q) = %v, want %v", tt.name, got, tt.role)
			}
		})
	}
}

func TestPartRoleTextBearing(t *testing.T) {
	bearing := []PartRole{PartDocument, PartHeader, PartFooter, PartFootnotes, PartEndnotes, PartComments}
	for _, r := range bearing {
		if !r.TextBearing() {
			t.Fatalf("%v must be text-bearing", r)
		}
	}
	if PartPassThrough.TextBearing() {
		t.Fatal("pass-through must not be text-bearing")
	}
}

func TestPartRoleRootLocal(t *testing.T) {
	tests := []struct {
		role PartRole
		want string
	}{
		{PartDocument, "document"},
		{PartHeader, "hdr"},
		{PartFooter, "ftr"},
		{PartFootnotes, "footnotes"},
		{PartEndnotes, "endnotes"},
		{PartComments, "comments"},
		{PartPassThrough, ""},
	}
	for _, tt := range tests {
		if got := tt.role.rootLocal(); got != tt.want {
			t.Fatalf("rootLocal(%v) = %q, want %q", tt.role, got, tt.want)
		}
	}
}
