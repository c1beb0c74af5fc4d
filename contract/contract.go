// Package contract models the two contract templates the dialogue can fill:
// Murabaha (cost-plus-markup installment sale) and Istisna (manufacture to
// order). The Form is the per-session accumulator; its JSON shape doubles as
// the RFC6902 patch surface and the session serialization format, and the
// JSON tags are the template placeholder names.
package contract

import (
	"fmt"
	"time"

	"github.com/tashfin/contractbot/money"
)

type Type string

const (
	Murabaha Type = "murabaha"
	Istisna  Type = "istisna"
)

// DateLayout is the DD.MM.YYYY format the user types and the documents show.
const DateLayout = "02.01.2006"

// ParseDate reads a contract date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("contract: bad date %q: %w", s, err)
	}
	return t, nil
}

// Number derives the contract number from the contract date: X-YY_MM_DD.
// Same date, same number.
func Number(date time.Time) string {
	return "X-" + date.Format("06_01_02")
}

// Form accumulates everything one session collects. Type is set once at the
// start and survives an edit restart; everything else is cleared.
type Form struct {
	Type     Type           `json:"contract_type"`
	Number   string         `json:"nomer_dogovora"`
	Date     string         `json:"data_dogovora"`
	Murabaha MurabahaFields `json:"murabaha"`
	Istisna  IstisnaFields  `json:"istisna"`
}

// MurabahaFields holds the installment flow answers. Cost, markup and
// advance are stored per the user's input (cost and markup per unit);
// totals are derived at summary and generation time.
type MurabahaFields struct {
	SellerName     string      `json:"fio_prodavca"`
	BuyerName      string      `json:"fio_pokupatelya"`
	BuyerPhone     string      `json:"tel_pokupatelya"`
	GuarantorName  string      `json:"fio_poruchitelya1"`
	GuarantorPhone string      `json:"tel_poruchit1"`
	Item           string      `json:"pokupaemy_tov"`
	Quantity       int         `json:"kolichestvo_tov"`
	UnitCost       money.Money `json:"sebestoimost_tovara"`
	UnitMarkup     money.Money `json:"nacenka_tov"`
	Advance        money.Money `json:"pervi_vznos"`
	TermMonths     int         `json:"srok_dogov"`
	Payday         int         `json:"data_opl"`
	Pledge         string      `json:"zalog"`
}

// IstisnaFields holds the manufacture-order flow answers. TotalAuto is
// price times quantity, computed eagerly when the quantity is accepted;
// TotalFinal is either that or the manual override.
type IstisnaFields struct {
	BuyerName         string      `json:"buyer_fio"`
	BuyerAddress      string      `json:"buyer_address"`
	BuyerPassportSN   string      `json:"buyer_passport_series_number"`
	BuyerPassportBy   string      `json:"buyer_passport_issued_by"`
	SupplierName      string      `json:"supplier_fio"`
	SupplierAddress   string      `json:"supplier_address"`
	ManufacturingDays int         `json:"manufacturing_days"`
	SupplierPhone     string      `json:"supplier_phone"`
	BuyerPhone        string      `json:"buyer_phone"`
	ItemName          string      `json:"item_name"`
	UnitPrice         money.Money `json:"item_price"`
	Quantity          int         `json:"item_qty"`
	TotalAuto         money.Money `json:"total_cost_auto"`
	TotalOverride     money.Money `json:"total_cost_override"`
	TotalFinal        money.Money `json:"total_cost_final"`
}

// Reset clears everything except, when keepType is set, the contract type.
// Used by the edit (restart) and cancel actions.
func (f *Form) Reset(keepType bool) {
	t := f.Type
	*f = Form{}
	if keepType {
		f.Type = t
	}
}
