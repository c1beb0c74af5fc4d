package testcases

import (
	"errors"
	"testing"
)

// TestGenerationFailureCleansUp: a render error reports the problem,
// resets the dialogue and leaves no files behind.
func TestGenerationFailureCleansUp(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	b.assembler.err = errors.New("template missing")

	b.script(t, murabahaAnswers...)
	reply := b.say(t, "✅ Сгенерировать")
	wantContains(t, reply, "Не удалось")
	wantKeyboard(t, reply, "Мурабаха", "Истисна")
	if len(b.sender.Sent) != 0 {
		t.Errorf("documents sent despite render failure: %v", b.sender.Sent)
	}
	if left := leftoverFiles(t, b.assembler); len(left) != 0 {
		t.Errorf("files left after failed render: %v", left)
	}

	// The dialogue is usable again after the failure.
	b.assembler.err = nil
	reply = b.script(t, murabahaAnswers...)
	wantContains(t, reply, "Проверьте данные")
}

// TestSendFailureCleansUp: rendered files are deleted even when the
// chat rejects them.
func TestSendFailureCleansUp(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	b.sender.err = errors.New("blocked by user")

	b.script(t, murabahaAnswers...)
	reply := b.say(t, "✅ Сгенерировать")
	wantContains(t, reply, "Не удалось")
	if left := leftoverFiles(t, b.assembler); len(left) != 0 {
		t.Errorf("files left after failed send: %v", left)
	}
}

// TestGenerationRemovesBatchDirectory: success deletes the per-batch
// directory as well, not just the documents inside it.
func TestGenerationRemovesBatchDirectory(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)

	b.script(t, murabahaAnswers...)
	b.say(t, "✅ Сгенерировать")
	if left := leftoverFiles(t, b.assembler); len(left) != 0 {
		t.Errorf("batch directory survived: %v", left)
	}
	if b.assembler.Batch == "" {
		t.Fatal("assembler never ran")
	}
}
