package docgen

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tashfin/contractbot/contract"
)

func TestOutputName(t *testing.T) {
	got := outputName("templates/dogovor_murabaha.docx", "X-24_03_10")
	if got != "dogovor_murabaha_X-24_03_10.docx" {
		t.Errorf("outputName = %q", got)
	}
}

func TestRenderReplacesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "dogovor.docx")
	writeMinimalDocx(t, tpl, "Договор №{{nomer_dogovora}} от {{data_dogovora}}")

	a := NewDocxAssembler(Config{
		MurabahaTemplates: []string{tpl},
		OutputDir:         dir,
	})
	paths, err := a.Render(context.Background(), contract.Murabaha, "X-24_03_10", map[string]string{
		"nomer_dogovora": "X-24_03_10",
		"data_dogovora":  "10.03.2024",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 document, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "dogovor_X-24_03_10.docx" {
		t.Errorf("output name = %q", filepath.Base(paths[0]))
	}

	content := readDocxText(t, paths[0])
	if strings.Contains(content, "{{") {
		t.Errorf("placeholders left in output: %s", content)
	}
	if !strings.Contains(content, "X-24_03_10") || !strings.Contains(content, "10.03.2024") {
		t.Errorf("values not substituted: %s", content)
	}
}

func TestRenderNoTemplates(t *testing.T) {
	a := NewDocxAssembler(Config{OutputDir: t.TempDir()})
	if _, err := a.Render(context.Background(), contract.Istisna, "X", nil); err == nil {
		t.Error("expected error with no templates configured")
	}
}

func TestRenderMissingTemplateCleansBatchDir(t *testing.T) {
	out := t.TempDir()
	a := NewDocxAssembler(Config{
		MurabahaTemplates: []string{filepath.Join(out, "missing.docx")},
		OutputDir:         out,
	})
	if _, err := a.Render(context.Background(), contract.Murabaha, "X", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("batch dir left behind after failure: %v", entries)
	}
}

// writeMinimalDocx builds the smallest .docx the reader accepts: a zip with
// content types, the package relationships and one document part.
func writeMinimalDocx(t *testing.T, path, text string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`</Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
			`<w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`,
	}
	for name, content := range parts {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readDocxText(t *testing.T, path string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(data)
	}
	t.Fatal("word/document.xml not found in output")
	return ""
}
