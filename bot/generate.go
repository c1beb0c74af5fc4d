package bot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tashfin/contractbot/contract"
	"github.com/tashfin/contractbot/schedule"
)

// generate runs the confirmed form through the document assembler, streams
// the files out and deletes them. Collaborator failures are reported as a
// single notice and the session restarts from the contract choice; the
// in-progress data is intentionally not kept across a failed attempt.
func (e *Engine) generate(ctx context.Context, s *Session) (*Reply, error) {
	form := &s.Form

	var rows []schedule.Row
	if form.Type != contract.Istisna {
		start, err := contract.ParseDate(form.Date)
		if err != nil {
			// The date was validated on entry; a broken stored session is
			// the only way here.
			e.log.Error("stored contract date unreadable", "date", form.Date, "err", err)
			return e.failGeneration(ctx, s), nil
		}
		m := form.Murabaha
		rows = schedule.Compute(start, m.TermMonths, m.Payday, m.PriceTotal(), m.Advance)
	}

	paths, err := e.assembler.Render(ctx, form.Type, form.Number, form.FieldMap(rows))
	if err != nil {
		e.log.Error("document assembly failed", "type", form.Type, "err", err)
		return e.failGeneration(ctx, s), nil
	}
	defer e.removeAll(paths)

	for _, path := range paths {
		if err := e.sender.SendDocument(ctx, path); err != nil {
			e.log.Error("document transfer failed", "path", path, "err", err)
			return e.failGeneration(ctx, s), nil
		}
	}
	e.log.Info("documents delivered",
		"type", form.Type, "number", form.Number, "count", len(paths))

	s.Form.Reset(false)
	s.Step = StepChooseContract
	e.clearTranscript(ctx)
	return withKeyboard("✅ Готово. Хотите заполнить ещё один договор? Выберите:", kbContractChoice), nil
}

// failGeneration resets the attempt: one failure notice, then back to the
// contract choice.
func (e *Engine) failGeneration(ctx context.Context, s *Session) *Reply {
	s.Form.Reset(false)
	s.Step = StepChooseContract
	e.clearTranscript(ctx)
	return withKeyboard(
		"Не удалось сформировать документы. Попробуйте ещё раз — выберите договор:",
		kbContractChoice)
}

// removeAll deletes every generated file, then the batch directory that
// held them. Generated output must never outlive the turn that produced it.
func (e *Engine) removeAll(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			e.log.Warn("generated file not removed", "path", path, "err", err)
		}
	}
	if len(paths) > 0 {
		if err := os.Remove(filepath.Dir(paths[0])); err != nil && !os.IsNotExist(err) {
			e.log.Warn("batch dir not removed", "err", err)
		}
	}
}
