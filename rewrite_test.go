package docxscrub

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

const nsMath = "http://schemas.openxmlformats.org/officeDocument/2006/math"

func wordDocument(bodyText string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
		`<w:document xmlns:w=%q><w:body><w:p><w:pPr><w:jc w:val="center"/></w:pPr>`+
		`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p></w:body></w:document>`,
		nsWordMain, bodyText))
}

func wordHeader(text string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
		`<w:hdr xmlns:w=%q><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:hdr>`, nsWordMain, text))
}

func TestRewriteRemovesRunText(t *testing.T) {
	set := NewCharset('\u200b')
	out, tally, err := Rewrite(wordDocument("Hello\u200bWorld"), PartDocument, set)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if !bytes.Contains(out, []byte(">HelloWorld<")) {
		t.Fatalf("run text not filtered:\n%s", out)
	}
	if bytes.Contains(out, []byte("\u200b")) {
		t.Fatal("output still contains U+200B")
	}
	if tally['\u200b'] != 1 {
		t.Fatalf("tally = %v, want one U+200B", tally)
	}
}

func TestRewritePreservesStructure(t *testing.T) {
	set := NewCharset('\u200b')
	out, _, err := Rewrite(wordDocument("Hello\u200bWorld"), PartDocument, set)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	for _, want := range []string{
		`xmlns:w="` + nsWordMain + `"`,
		`w:val="center"`,
		`xml:space="preserve"`,
		"<w:pPr>", "<w:rPr>", "<w:body>",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRewriteStableRoundTrip(t *testing.T) {
	set := NewCharset()
	in := wordDocument("No invisibles here")
	out1, _, err := Rewrite(in, PartDocument, set)
	if err != nil {
		t.Fatalf("first Rewrite: %v", err)
	}
	out2, _, err := Rewrite(out1, PartDocument, set)
	if err != nil {
		t.Fatalf("second Rewrite: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatalf("round trip not stable:\n%s\nvs\n%s", out1, out2)
	}
}

func TestRewriteEmptiedNodeRetained(t *testing.T) {
	set := NewCharset('\u200b')
	out, tally, err := Rewrite(wordDocument("\u200b\u200b"), PartDocument, set)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if tally.Total() != 2 {
		t.Fatalf("tally total = %d, want 2", tally.Total())
	}
	if got := bytes.Count(out, []byte("<w:t ")); got != 1 {
		t.Fatalf("text node count = %d, want 1:\n%s", got, out)
	}
	out2, _, err := Rewrite(out, PartDocument, set)
	if err != nil {
		t.Fatalf("second Rewrite: %v", err)
	}
	if !bytes.Equal(out, out2) {
		t.Fatal("emptied document not stable under rewrite")
	}
}

func TestRewriteLeavesNonRunTextAlone(t *testing.T) {
	doc := []byte(fmt.Sprintf(`<w:document xmlns:w=%q><w:body>`+
		`<w:p><w:r><w:t>a%sb</w:t></w:r></w:p>`+
		`<w:marker>x%sy</w:marker>`+
		`</w:body></w:document>`, nsWordMain, "\u200b", "\u200b"))
	out, tally, err := Rewrite(doc, PartDocument, NewCharset('\u200b'))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if !bytes.Contains(out, []byte(">ab<")) {
		t.Fatalf("run text not filtered:\n%s", out)
	}
	if !bytes.Contains(out, []byte("x\u200by")) {
		t.Fatalf("non-run text was mutated:\n%s", out)
	}
	if tally.Total() != 1 {
		t.Fatalf("tally total = %d, want 1", tally.Total())
	}
}

func TestRewriteLeavesMathTextAlone(t *testing.T) {
	doc := []byte(fmt.Sprintf(`<w:document xmlns:w=%q xmlns:m=%q><w:body><w:p>`+
		`<m:oMath><m:r><m:t>x%sy</m:t></m:r></m:oMath>`+
		`<w:r><w:t>a%sb</w:t></w:r>`+
		`</w:p></w:body></w:document>`, nsWordMain, nsMath, "\u200b", "\u200b"))
	out, _, err := Rewrite(doc, PartDocument, NewCharset('\u200b'))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if !bytes.Contains(out, []byte("x\u200by")) {
		t.Fatalf("math run text was mutated:\n%s", out)
	}
	if !bytes.Contains(out, []byte(">ab<")) {
		t.Fatalf("word run text not filtered:\n%s", out)
	}
}

func TestRewritePrefixIndependent(t *testing.T) {
	doc := []byte(fmt.Sprintf(`<x:document xmlns:x=%q><x:body><x:p>`+
		`<x:r><x:t>a%sb</x:t></x:r>`+
		`</x:p></x:body></x:document>`, nsWordMain, "\u200b"))
	out, tally, err := Rewrite(doc, PartDocument, NewCharset('\u200b'))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if !bytes.Contains(out, []byte(">ab<")) {
		t.Fatalf("renamed prefix not handled:\n%s", out)
	}
	if tally.Total() != 1 {
		t.Fatalf("tally total = %d, want 1", tally.Total())
	}
}

func TestRewriteMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unclosed element", "<w:document><w:body>"},
		{"truncated tag", "<w:hdr"},
		{"mismatched tags", "<a></b>"},
		{"no root element", "this is not xml"},
		{"empty input", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Rewrite([]byte(tt.data), PartDocument, NewCharset('\u200b'))
			if !errors.Is(err, ErrMalformedXML) {
				t.Fatalf("expected ErrMalformedXML, got %v", err)
			}
		})
	}
}

func TestRewriteWrongRoot(t *testing.T) {
	_, _, err := Rewrite(wordHeader("x"), PartDocument, NewCharset('\u200b'))
	if !errors.Is(err, ErrUnsupportedPart) {
		t.Fatalf("expected ErrUnsupportedPart, got %v", err)
	}
	// The same payload is fine under the right role.
	if _, _, err := Rewrite(wordHeader("x"), PartHeader, NewCharset('\u200b')); err != nil {
		t.Fatalf("Rewrite header: %v", err)
	}
}
