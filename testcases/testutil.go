package testcases

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/tashfin/contractbot/bot"
	"github.com/tashfin/contractbot/contract"
)

// diskAssembler writes one real file per template name so the cases can
// verify the engine deletes everything after sending. It records the
// field map of the last render for content assertions.
type diskAssembler struct {
	mu     sync.Mutex
	dir    string
	err    error
	Fields map[string]string
	Batch  string
}

func newDiskAssembler(t *testing.T) *diskAssembler {
	t.Helper()
	return &diskAssembler{dir: t.TempDir()}
}

func (a *diskAssembler) Render(_ context.Context, ct contract.Type, number string, fields map[string]string) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	a.Fields = fields
	a.Batch = filepath.Join(a.dir, uuid.NewString())
	if err := os.MkdirAll(a.Batch, 0o755); err != nil {
		return nil, err
	}
	names := []string{"dogovor_" + number + ".docx", "grafik_" + number + ".docx"}
	if ct == contract.Istisna {
		names = names[:1]
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(a.Batch, name)
		if err := os.WriteFile(p, []byte("rendered"), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// captureSender remembers document names instead of talking to a chat.
type captureSender struct {
	mu   sync.Mutex
	err  error
	Sent []string
}

func (s *captureSender) SendDocument(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.Sent = append(s.Sent, filepath.Base(path))
	return nil
}

type testBot struct {
	engine    *bot.Engine
	assembler *diskAssembler
	sender    *captureSender
	ctx       context.Context
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	assembler := newDiskAssembler(t)
	sender := &captureSender{}
	engine, err := bot.NewEngine(bot.NewMemorySessionStore(), assembler, sender,
		bot.WithTranscript(bot.NewMemoryTranscriptStore(40)))
	if err != nil {
		t.Fatalf("engine init: %v", err)
	}
	return &testBot{
		engine:    engine,
		assembler: assembler,
		sender:    sender,
		ctx:       bot.WithSessionKey(context.Background(), t.Name()),
	}
}

// say sends one user turn and fails the test on engine errors.
func (b *testBot) say(t *testing.T, input string) *bot.Reply {
	t.Helper()
	reply, err := b.engine.Invoke(b.ctx, input)
	if err != nil {
		t.Fatalf("turn %q: %v", input, err)
	}
	return reply
}

// script runs several turns and returns the last reply.
func (b *testBot) script(t *testing.T, inputs ...string) *bot.Reply {
	t.Helper()
	var last *bot.Reply
	for _, input := range inputs {
		last = b.say(t, input)
	}
	return last
}

func wantContains(t *testing.T, reply *bot.Reply, substrings ...string) {
	t.Helper()
	for _, sub := range substrings {
		if !strings.Contains(reply.Text, sub) {
			t.Errorf("reply missing %q:\n%s", sub, reply.Text)
		}
	}
}

func wantKeyboard(t *testing.T, reply *bot.Reply, buttons ...string) {
	t.Helper()
	flat := map[string]bool{}
	for _, row := range reply.Keyboard {
		for _, btn := range row {
			flat[btn] = true
		}
	}
	for _, btn := range buttons {
		if !flat[btn] {
			t.Errorf("keyboard missing button %q in %+v", btn, reply.Keyboard)
		}
	}
}

// leftoverFiles walks the assembler root and reports anything not
// cleaned up after a generation attempt.
func leftoverFiles(t *testing.T, a *diskAssembler) []string {
	t.Helper()
	var left []string
	err := filepath.WalkDir(a.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if path != a.dir {
			left = append(left, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	return left
}

// murabahaAnswers is a complete happy-path murabaha dialogue:
// TV for 10000 + 2000 markup per unit, one unit, no advance,
// 12 months, payday on the 15th, no pledge.
var murabahaAnswers = []string{
	"Мурабаха",
	"10.03.2024",
	"Иванов Иван Иванович",
	"Петров Пётр Петрович",
	"+7 900 000-00-00",
	"Сидоров Сидор Сидорович",
	"+7 900 000-00-01",
	"Телевизор",
	"1",
	"10000",
	"2000",
	"0",
	"12",
	"15",
	"Нет",
}

// istisnaAnswers stops right before the total-cost choice:
// wardrobe, 500 per unit, three units.
var istisnaAnswers = []string{
	"Истисна",
	"10.03.2024",
	"Петров Пётр Петрович",
	"г. Казань, ул. Баумана, 1",
	"9214 123456",
	"МВД по Республике Татарстан",
	"ООО Мебельщик",
	"г. Казань, ул. Декабристов, 2",
	"30",
	"+7 900 000-00-02",
	"+7 900 000-00-00",
	"Шкаф",
	"500",
	"3",
}
