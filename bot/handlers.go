package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/tashfin/contractbot/command"
	"github.com/tashfin/contractbot/contract"
	"github.com/tashfin/contractbot/money"
	"github.com/tashfin/contractbot/patch"
)

// handlerFunc validates the inbound text for one step. On rejection it
// re-prompts without touching the session; on acceptance it writes the
// field and advances.
type handlerFunc func(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error)

// handlers is the transition table: one entry per conversation step.
var handlers = map[Step]handlerFunc{
	StepChooseContract: handleChooseContract,
	StepDateContract:   handleDateContract,

	StepSellerName:     textField("/murabaha/fio_prodavca", StepBuyerName),
	StepBuyerName:      textField("/murabaha/fio_pokupatelya", StepBuyerPhone),
	StepBuyerPhone:     textField("/murabaha/tel_pokupatelya", StepGuarantorName),
	StepGuarantorName:  textField("/murabaha/fio_poruchitelya1", StepGuarantorPhone),
	StepGuarantorPhone: textField("/murabaha/tel_poruchit1", StepItemDesc),
	StepItemDesc:       textField("/murabaha/pokupaemy_tov", StepItemQty),
	StepItemQty: intField("/murabaha/kolichestvo_tov", 1, 0,
		"Количество должно быть положительным целым. Повторите:",
		"Количество должно быть положительным целым. Повторите:", StepUnitCost),
	StepUnitCost:   moneyField("/murabaha/sebestoimost_tovara", "Введите число (рубли). Повторите:", StepUnitMarkup),
	StepUnitMarkup: moneyField("/murabaha/nacenka_tov", "Введите число (рубли). Повторите:", StepAdvance),
	StepAdvance:    moneyField("/murabaha/pervi_vznos", "Введите число (рубли). Повторите:", StepTermMonths),
	StepTermMonths: intField("/murabaha/srok_dogov", 1, 0,
		"Срок должен быть положительным целым. Повторите:",
		"Срок должен быть положительным целым. Повторите:", StepPayday),
	StepPayday: intField("/murabaha/data_opl", 1, 31,
		"Введите число 1–31:",
		"День оплаты должен быть 1–31. Повторите:", StepPledge),
	StepPledge: handlePledge,

	StepConfirm: handleConfirm,

	StepIstisnaBuyerName:       textField("/istisna/buyer_fio", StepIstisnaBuyerAddress),
	StepIstisnaBuyerAddress:    textField("/istisna/buyer_address", StepIstisnaPassportSN),
	StepIstisnaPassportSN:      textField("/istisna/buyer_passport_series_number", StepIstisnaPassportBy),
	StepIstisnaPassportBy:      textField("/istisna/buyer_passport_issued_by", StepIstisnaSupplierName),
	StepIstisnaSupplierName:    textField("/istisna/supplier_fio", StepIstisnaSupplierAddress),
	StepIstisnaSupplierAddress: textField("/istisna/supplier_address", StepIstisnaMfgDays),
	StepIstisnaMfgDays: intField("/istisna/manufacturing_days", 0, 360,
		"Введите целое число 0–360.",
		"Срок изготовления должен быть в диапазоне 0–360.", StepIstisnaSupplierPhone),
	StepIstisnaSupplierPhone: textField("/istisna/supplier_phone", StepIstisnaBuyerPhone),
	StepIstisnaBuyerPhone:    textField("/istisna/buyer_phone", StepIstisnaItemName),
	StepIstisnaItemName:      textField("/istisna/item_name", StepIstisnaItemPrice),
	StepIstisnaItemPrice:     moneyField("/istisna/item_price", "Введите число (рубли). Повторите:", StepIstisnaItemQty),
	StepIstisnaItemQty:       handleIstisnaItemQty,
	StepIstisnaTotalChoice:   handleTotalChoice,
	StepIstisnaTotalOverride: handleTotalOverride,
}

func trimmed(s string) string { return strings.TrimSpace(s) }

// digits parses a non-negative integer written with digits only; signs,
// separators and anything else are rejected.
func digits(s string) (int, bool) {
	s = trimmed(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// textField accepts any non-blank answer as-is.
func textField(path string, next Step) handlerFunc {
	return func(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
		v := trimmed(input)
		if v == "" {
			return e.ask(s), nil
		}
		return e.advance(s, next, patch.Replace(path, v))
	}
}

// intField accepts an integer in [min, max]; max <= 0 means unbounded.
func intField(path string, min, max int, notInt, outOfRange string, next Step) handlerFunc {
	return func(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
		v, ok := digits(input)
		if !ok {
			return text(notInt), nil
		}
		if v < min || (max > 0 && v > max) {
			return text(outOfRange), nil
		}
		return e.advance(s, next, patch.Replace(path, v))
	}
}

// moneyField parses a decimal amount and stores it rounded up.
func moneyField(path, hint string, next Step) handlerFunc {
	return func(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
		m, err := money.ParseRoundUp(input)
		if err != nil {
			return text(hint), nil
		}
		return e.advance(s, next, patch.Replace(path, m))
	}
}

var contractChoices = map[string][]string{
	string(contract.Murabaha): {"мурабах"},
	string(contract.Istisna):  {"истисн"},
}

func handleChooseContract(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	choice := command.Choose(input, contractChoices, string(contract.Murabaha), string(contract.Istisna))
	if choice == "" {
		return text("Выберите тип договора кнопкой: «Мурабаха» или «Истисна»."), nil
	}
	return e.advance(s, StepDateContract, patch.Replace("/contract_type", choice))
}

func handleDateContract(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	date, err := contract.ParseDate(trimmed(input))
	if err != nil {
		return text("Неверный формат. Введите дату как ДД.ММ.ГГГГ:"), nil
	}
	next := StepSellerName
	if s.Form.Type == contract.Istisna {
		next = StepIstisnaBuyerName
	}
	return e.advance(s, next,
		patch.Replace("/data_dogovora", date.Format(contract.DateLayout)),
		patch.Replace("/nomer_dogovora", contract.Number(date)),
	)
}

func handlePledge(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	answer := command.YesNo(input)
	if answer == "" {
		return text("Ответьте: Да или Нет"), nil
	}
	return e.advance(s, StepConfirm, patch.Replace("/murabaha/zalog", answer))
}

// handleIstisnaItemQty stores the quantity and eagerly derives the auto
// total, which also becomes the selected total until overridden.
func handleIstisnaItemQty(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	qty, ok := digits(input)
	if !ok || qty <= 0 {
		return text("Количество должно быть положительным целым числом."), nil
	}
	fields := s.Form.Istisna
	fields.Quantity = qty
	auto := fields.AutoTotal()
	return e.advance(s, StepIstisnaTotalChoice,
		patch.Replace("/istisna/item_qty", qty),
		patch.Replace("/istisna/total_cost_auto", auto),
		patch.Replace("/istisna/total_cost_final", auto),
	)
}

var totalChoices = map[string][]string{
	"auto":   {"авто"},
	"manual": {"вруч"},
}

func handleTotalChoice(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	switch command.Choose(input, totalChoices, "auto", "manual") {
	case "auto":
		return e.advance(s, StepConfirm)
	case "manual":
		return e.advance(s, StepIstisnaTotalOverride)
	}
	return text("Выберите кнопкой: «Оставить авто» или «Ввести вручную»."), nil
}

func handleTotalOverride(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	m, err := money.ParseRoundUp(input)
	if err != nil {
		return text("Введите число (рубли)."), nil
	}
	return e.advance(s, StepConfirm,
		patch.Replace("/istisna/total_cost_override", m),
		patch.Replace("/istisna/total_cost_final", m),
	)
}

func handleConfirm(ctx context.Context, e *Engine, s *Session, input string) (*Reply, error) {
	switch command.ParseConfirm(input) {
	case command.Generate:
		return e.generate(ctx, s)
	case command.Edit:
		s.Form.Reset(true)
		s.Step = StepDateContract
		e.clearTranscript(ctx)
		return textNoKeyboard("Начнём заново. Введите дату договора (ДД.ММ.ГГГГ):"), nil
	case command.Cancel:
		s.Form.Reset(false)
		s.Step = StepChooseContract
		e.clearTranscript(ctx)
		return withKeyboard("Отменено. Выберите договор:", kbContractChoice), nil
	}
	return text("Выберите действие кнопками."), nil
}
