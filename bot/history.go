package bot

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// TranscriptStore keeps the dialogue of a session as chat messages, one
// user/assistant pair per turn, trimmed to the last N entries. It exists
// for operator inspection of a session and is cleared whenever the form
// it belongs to ends or restarts.
type TranscriptStore struct {
	store Store[[]*schema.Message]
	keep  int
}

func NewTranscriptStore(core Cache[[]*schema.Message], keep int) *TranscriptStore {
	return &TranscriptStore{
		store: NewStore(core, "bot:transcript", sessionKeyOrDefault),
		keep:  keep,
	}
}

func NewMemoryTranscriptStore(keep int) *TranscriptStore {
	return NewTranscriptStore(NewMemoryCache[[]*schema.Message](), keep)
}

func (t *TranscriptStore) Load(ctx context.Context) ([]*schema.Message, error) {
	hist, ok, err := t.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return hist, nil
}

// Append records one turn and saves the trimmed transcript.
func (t *TranscriptStore) Append(ctx context.Context, msgs ...*schema.Message) error {
	hist, err := t.Load(ctx)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		hist = append(hist, msg)
	}
	hist = t.trim(hist)
	return t.store.Set(ctx, hist)
}

func (t *TranscriptStore) Clear(ctx context.Context) error {
	return t.store.Del(ctx)
}

func (t *TranscriptStore) trim(hist []*schema.Message) []*schema.Message {
	if t.keep <= 0 || len(hist) <= t.keep {
		return hist
	}
	return hist[len(hist)-t.keep:]
}
