package contract

import (
	"strconv"

	"github.com/tashfin/contractbot/schedule"
)

// ScheduleSlots is how many installment rows the Murabaha templates carry.
// The map always fills every slot; rows past the schedule end are emitted
// as empty strings, never omitted.
const ScheduleSlots = 12

// FieldMap flattens the form plus its derived figures into the
// placeholder→value map the document assembler consumes. For Murabaha the
// installment schedule must be passed in; Istisna ignores it.
func (f *Form) FieldMap(rows []schedule.Row) map[string]string {
	fields := map[string]string{
		"nomer_dogovora": f.Number,
		"data_dogovora":  f.Date,
	}
	switch f.Type {
	case Istisna:
		i := f.Istisna
		fields["buyer_fio"] = i.BuyerName
		fields["buyer_address"] = i.BuyerAddress
		fields["buyer_passport_series_number"] = i.BuyerPassportSN
		fields["buyer_passport_issued_by"] = i.BuyerPassportBy
		fields["supplier_fio"] = i.SupplierName
		fields["supplier_address"] = i.SupplierAddress
		fields["manufacturing_days"] = strconv.Itoa(i.ManufacturingDays)
		fields["supplier_phone"] = i.SupplierPhone
		fields["buyer_phone"] = i.BuyerPhone
		fields["item_name"] = i.ItemName
		fields["item_price"] = i.UnitPrice.String()
		fields["item_qty"] = strconv.Itoa(i.Quantity)
		fields["total_cost_final"] = i.TotalFinal.String()
	default:
		m := f.Murabaha
		fields["fio_prodavca"] = m.SellerName
		fields["fio_pokupatelya"] = m.BuyerName
		fields["tel_pokupatelya"] = m.BuyerPhone
		fields["fio_poruchitelya1"] = m.GuarantorName
		fields["tel_poruchit1"] = m.GuarantorPhone
		fields["pokupaemy_tov"] = m.Item
		fields["kolichestvo_tov"] = strconv.Itoa(m.Quantity)
		fields["polnaya_stoimost_tov"] = m.PriceTotal().String()
		fields["sebestoimost_tovara"] = m.CostTotal().String()
		fields["nacenka_tov"] = m.MarkupTotal().String()
		fields["pervi_vznos"] = m.Advance.String()
		fields["srok_dogov"] = strconv.Itoa(m.TermMonths)
		fields["ejemes_oplata"] = schedule.First(rows).String()
		fields["data_opl"] = strconv.Itoa(m.Payday)
		fields["zalog"] = m.Pledge
		fields["ostatok_dolga"] = m.RemainingDebt().String()

		for i := 1; i <= ScheduleSlots; i++ {
			n := strconv.Itoa(i)
			if i <= len(rows) {
				row := rows[i-1]
				fields["data_plateja"+n] = row.Date.Format(DateLayout)
				fields["summa_plateja"+n] = row.Amount.String()
				fields["ostatok_posle_plateja"+n] = row.Balance.String()
			} else {
				fields["data_plateja"+n] = ""
				fields["summa_plateja"+n] = ""
				fields["ostatok_posle_plateja"+n] = ""
			}
		}
	}
	return fields
}
