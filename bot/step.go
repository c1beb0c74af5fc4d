package bot

// Step identifies one node of the conversation graph. The Murabaha and
// Istisna flows share the contract choice, the date step and the final
// review; each flow then walks its own fixed field sequence.
type Step int

const (
	StepChooseContract Step = iota
	StepDateContract

	// Murabaha flow.
	StepSellerName
	StepBuyerName
	StepBuyerPhone
	StepGuarantorName
	StepGuarantorPhone
	StepItemDesc
	StepItemQty
	StepUnitCost
	StepUnitMarkup
	StepAdvance
	StepTermMonths
	StepPayday
	StepPledge

	StepConfirm

	// Istisna flow.
	StepIstisnaBuyerName
	StepIstisnaBuyerAddress
	StepIstisnaPassportSN
	StepIstisnaPassportBy
	StepIstisnaSupplierName
	StepIstisnaSupplierAddress
	StepIstisnaMfgDays
	StepIstisnaSupplierPhone
	StepIstisnaBuyerPhone
	StepIstisnaItemName
	StepIstisnaItemPrice
	StepIstisnaItemQty
	StepIstisnaTotalChoice
	StepIstisnaTotalOverride
)

var stepNames = map[Step]string{
	StepChooseContract:         "choose_contract",
	StepDateContract:           "date_contract",
	StepSellerName:             "seller_name",
	StepBuyerName:              "buyer_name",
	StepBuyerPhone:             "buyer_phone",
	StepGuarantorName:          "guarantor_name",
	StepGuarantorPhone:         "guarantor_phone",
	StepItemDesc:               "item_desc",
	StepItemQty:                "item_qty",
	StepUnitCost:               "unit_cost",
	StepUnitMarkup:             "unit_markup",
	StepAdvance:                "advance",
	StepTermMonths:             "term_months",
	StepPayday:                 "payday",
	StepPledge:                 "pledge",
	StepConfirm:                "confirm",
	StepIstisnaBuyerName:       "istisna_buyer_name",
	StepIstisnaBuyerAddress:    "istisna_buyer_address",
	StepIstisnaPassportSN:      "istisna_passport_sn",
	StepIstisnaPassportBy:      "istisna_passport_issued_by",
	StepIstisnaSupplierName:    "istisna_supplier_name",
	StepIstisnaSupplierAddress: "istisna_supplier_address",
	StepIstisnaMfgDays:         "istisna_mfg_days",
	StepIstisnaSupplierPhone:   "istisna_supplier_phone",
	StepIstisnaBuyerPhone:      "istisna_buyer_phone",
	StepIstisnaItemName:        "istisna_item_name",
	StepIstisnaItemPrice:       "istisna_item_price",
	StepIstisnaItemQty:         "istisna_item_qty",
	StepIstisnaTotalChoice:     "istisna_total_choice",
	StepIstisnaTotalOverride:   "istisna_total_override",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Fixed keyboard suggestion sets.
var (
	kbContractChoice = [][]string{{"Мурабаха", "Истисна"}}
	kbYesNo          = [][]string{{"Да", "Нет"}}
	kbConfirm        = [][]string{{"✅ Сгенерировать", "✏️ Исправить"}, {"⛔️ Отмена"}}
	kbTotalChoice    = [][]string{{"Оставить авто", "Ввести вручную"}}
)

// Reply is the single outbound message a turn produces. Keyboard carries
// one of the fixed suggestion sets; RemoveKeyboard tells the transport to
// drop a previously offered one.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

func text(s string) *Reply { return &Reply{Text: s} }

func textNoKeyboard(s string) *Reply { return &Reply{Text: s, RemoveKeyboard: true} }

func withKeyboard(s string, kb [][]string) *Reply { return &Reply{Text: s, Keyboard: kb} }
