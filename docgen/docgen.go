// Package docgen assembles the output documents: it substitutes
// {{field}} placeholders from the flat field map into .docx templates and
// returns the produced file paths. The caller owns the files from then on
// and is responsible for deleting them after transfer.
package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyenthenguyen/docx"

	"github.com/tashfin/contractbot/contract"
)

// Assembler produces the documents for one confirmed contract.
type Assembler interface {
	Render(ctx context.Context, contractType contract.Type, number string, fields map[string]string) ([]string, error)
}

// Config points the assembler at its templates. Murabaha renders the
// contract plus the payment schedule; Istisna renders the contract set.
type Config struct {
	MurabahaTemplates []string `json:"murabaha_templates"`
	IstisnaTemplates  []string `json:"istisna_templates"`
	OutputDir         string   `json:"output_dir"`
}

// DocxAssembler renders Word templates. Each generation gets its own
// uuid-named batch directory under OutputDir so concurrent sessions never
// collide and cleanup is a single directory removal.
type DocxAssembler struct {
	conf Config
}

func NewDocxAssembler(conf Config) *DocxAssembler {
	return &DocxAssembler{conf: conf}
}

func (a *DocxAssembler) Render(ctx context.Context, contractType contract.Type, number string, fields map[string]string) ([]string, error) {
	templates := a.conf.MurabahaTemplates
	if contractType == contract.Istisna {
		templates = a.conf.IstisnaTemplates
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("docgen: no templates configured for %s", contractType)
	}

	batchDir := filepath.Join(a.conf.OutputDir, uuid.NewString())
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return nil, fmt.Errorf("docgen: create output dir: %w", err)
	}

	paths := make([]string, 0, len(templates))
	for _, tpl := range templates {
		out := filepath.Join(batchDir, outputName(tpl, number))
		if err := renderTemplate(tpl, out, fields); err != nil {
			// Partial output must not leak across attempts.
			_ = os.RemoveAll(batchDir)
			return nil, err
		}
		paths = append(paths, out)
	}
	return paths, nil
}

func renderTemplate(templatePath, outPath string, fields map[string]string) error {
	r, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return fmt.Errorf("docgen: read template %s: %w", templatePath, err)
	}
	defer r.Close()

	doc := r.Editable()
	for key, value := range fields {
		if err := doc.Replace("{{"+key+"}}", value, -1); err != nil {
			return fmt.Errorf("docgen: replace %q in %s: %w", key, templatePath, err)
		}
	}
	if err := doc.WriteToFile(outPath); err != nil {
		return fmt.Errorf("docgen: write %s: %w", outPath, err)
	}
	return nil
}

// outputName derives the output filename from the template name and the
// contract number: contract.docx + X-24_03_10 -> contract_X-24_03_10.docx.
func outputName(templatePath, number string) string {
	base := filepath.Base(templatePath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + number + ext
}
