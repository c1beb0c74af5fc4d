// Package bot implements the conversational data-collection state machine:
// it receives one inbound text message at a time, validates it against the
// active step, writes accepted answers into the session form and emits
// exactly one outbound prompt before returning.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/schema"

	"github.com/tashfin/contractbot/docgen"
	"github.com/tashfin/contractbot/patch"
)

// DocumentSender delivers one generated file to the user. The transport
// resolves the destination from the session key in the context.
type DocumentSender interface {
	SendDocument(ctx context.Context, path string) error
}

// Engine drives the dialogue. It owns no per-session state itself; every
// invocation loads the session from the store and persists it back, so the
// engine can serve any number of sessions as long as the transport never
// delivers two messages of the same session concurrently.
type Engine struct {
	sessions   *SessionStore
	transcript *TranscriptStore
	assembler  docgen.Assembler
	sender     DocumentSender
	log        *slog.Logger
}

// Option customizes the engine.
type Option func(*Engine)

// WithTranscript records every turn into the given transcript store.
func WithTranscript(t *TranscriptStore) Option {
	return func(e *Engine) { e.transcript = t }
}

// WithLogger replaces the default slog logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func NewEngine(sessions *SessionStore, assembler docgen.Assembler, sender DocumentSender, opts ...Option) (*Engine, error) {
	if sessions == nil {
		return nil, fmt.Errorf("bot: session store is required")
	}
	if assembler == nil {
		return nil, fmt.Errorf("bot: document assembler is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("bot: document sender is required")
	}
	e := &Engine{
		sessions:  sessions,
		assembler: assembler,
		sender:    sender,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RestartSignal resets the dialogue from any step.
const RestartSignal = "/start"

// Invoke processes one inbound message and returns the single outbound
// reply. Validation failures are ordinary replies that re-prompt the same
// step; an error return means the session could not be loaded or saved.
func (e *Engine) Invoke(ctx context.Context, input string) (*Reply, error) {
	sess, err := e.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("bot: load session: %w", err)
	}
	from := sess.Step

	var reply *Reply
	if isRestart(input) {
		*sess = *newSession()
		e.clearTranscript(ctx)
		reply = e.ask(sess)
	} else {
		handler, ok := handlers[sess.Step]
		if !ok {
			// Unknown step in a stored session: recover by restarting.
			*sess = *newSession()
			reply = e.ask(sess)
		} else {
			reply, err = handler(ctx, e, sess, input)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := e.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("bot: save session: %w", err)
	}
	e.record(ctx, input, reply.Text)
	if from != sess.Step {
		e.log.Debug("step transition", "from", from, "to", sess.Step, "type", sess.Form.Type)
	}
	return reply, nil
}

func isRestart(input string) bool {
	return trimmed(input) == RestartSignal
}

// record appends the turn to the transcript; transcript failures are not
// worth failing the turn over.
func (e *Engine) record(ctx context.Context, input, output string) {
	if e.transcript == nil {
		return
	}
	err := e.transcript.Append(ctx,
		schema.UserMessage(input),
		schema.AssistantMessage(output, nil),
	)
	if err != nil {
		e.log.Warn("transcript append failed", "err", err)
	}
}

// clearTranscript drops the dialogue record after a completed or
// cancelled form.
func (e *Engine) clearTranscript(ctx context.Context) {
	if e.transcript == nil {
		return
	}
	if err := e.transcript.Clear(ctx); err != nil {
		e.log.Warn("transcript clear failed", "err", err)
	}
}

// ask renders the prompt for the session's current step, i.e. the question
// the user sees on entering it.
func (e *Engine) ask(s *Session) *Reply {
	switch s.Step {
	case StepChooseContract:
		return withKeyboard("Выберите договор:", kbContractChoice)
	case StepDateContract:
		return textNoKeyboard("Введите дату заключения договора (ДД.ММ.ГГГГ):")
	case StepSellerName:
		return text("Введите ФИО продавца:")
	case StepBuyerName, StepIstisnaBuyerName:
		return text("Введите ФИО покупателя:")
	case StepBuyerPhone:
		return text("Введите номер телефона покупателя:")
	case StepGuarantorName:
		return text("Введите ФИО поручителя:")
	case StepGuarantorPhone:
		return text("Введите номер телефона поручителя:")
	case StepItemDesc:
		return text("Введите полное описание товара:")
	case StepItemQty, StepIstisnaItemQty:
		return text("Введите количество товара (целое число):")
	case StepUnitCost:
		return text("Введите себестоимость товара (рубли):")
	case StepUnitMarkup:
		return text("Введите наценку (рубли):")
	case StepAdvance:
		return text("Введите первоначальный взнос (если нет — 0):")
	case StepTermMonths:
		return text("Введите срок договора (в месяцах):")
	case StepPayday:
		return text("Введите день месяца для оплаты (1–31):")
	case StepPledge:
		return withKeyboard("Залог (Да/Нет)?", kbYesNo)
	case StepConfirm:
		return withKeyboard(s.Form.Summary(), kbConfirm)
	case StepIstisnaBuyerAddress:
		return text("Введите адрес покупателя:")
	case StepIstisnaPassportSN:
		return text("Введите серию и номер паспорта покупателя:")
	case StepIstisnaPassportBy:
		return text("Введите кем выдан паспорт покупателя:")
	case StepIstisnaSupplierName:
		return text("Введите ФИО поставщика:")
	case StepIstisnaSupplierAddress:
		return text("Введите адрес поставщика:")
	case StepIstisnaMfgDays:
		return text("Введите срок изготовления в рабочих днях (0–360):")
	case StepIstisnaSupplierPhone:
		return text("Введите телефон поставщика:")
	case StepIstisnaBuyerPhone:
		return text("Введите телефон покупателя:")
	case StepIstisnaItemName:
		return text("Введите наименование товара (цвет/размер):")
	case StepIstisnaItemPrice:
		return text("Введите цену товара (рубли):")
	case StepIstisnaTotalChoice:
		return withKeyboard(fmt.Sprintf(
			"Авторасчет общей стоимости: %s руб.\nОставить эту сумму или ввести вручную?",
			s.Form.Istisna.TotalAuto), kbTotalChoice)
	case StepIstisnaTotalOverride:
		return textNoKeyboard("Введите общую стоимость (рубли):")
	}
	return withKeyboard("Выберите договор:", kbContractChoice)
}

// advance writes the accepted answer into the form and moves to the next
// step, replying with that step's prompt.
func (e *Engine) advance(s *Session, next Step, ops ...patch.Operation) (*Reply, error) {
	if len(ops) > 0 {
		form, err := patch.Apply(s.Form, ops...)
		if err != nil {
			return nil, fmt.Errorf("bot: write fields at %s: %w", s.Step, err)
		}
		s.Form = form
	}
	s.Step = next
	return e.ask(s), nil
}
