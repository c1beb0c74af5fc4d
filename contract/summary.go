package contract

import "fmt"

// Summary renders the review text shown at the confirmation step. The form
// is fully populated by the time this runs; the engine cannot reach the
// confirmation step otherwise.
func (f *Form) Summary() string {
	if f.Type == Istisna {
		i := f.Istisna
		return fmt.Sprintf(
			"Проверьте данные:\n\n"+
				"Договор: Истисна\n"+
				"Номер: %s\n"+
				"Дата: %s\n\n"+
				"Покупатель: %s\n"+
				"Адрес покупателя: %s\n"+
				"Телефон покупателя: %s\n\n"+
				"Поставщик: %s\n"+
				"Адрес поставщика: %s\n"+
				"Телефон поставщика: %s\n\n"+
				"Товар: %s\n"+
				"Цена за единицу: %s руб.\n"+
				"Количество: %d\n"+
				"Срок изготовления: %d рабочих дней\n"+
				"Общая стоимость (авто): %s руб.\n"+
				"Общая стоимость (итог): %s руб.\n",
			f.Number, f.Date,
			i.BuyerName, i.BuyerAddress, i.BuyerPhone,
			i.SupplierName, i.SupplierAddress, i.SupplierPhone,
			i.ItemName, i.UnitPrice, i.Quantity, i.ManufacturingDays,
			i.TotalAuto, i.TotalFinal,
		)
	}

	m := f.Murabaha
	return fmt.Sprintf(
		"Проверьте данные:\n\n"+
			"Договор: Мурабаха\n"+
			"Номер: %s\n"+
			"Дата: %s\n\n"+
			"Покупатель: %s\n"+
			"Телефон: %s\n\n"+
			"Товар: %s\n"+
			"Количество: %d\n"+
			"Наценка: %s руб.\n"+
			"Полная стоимость: %s руб.\n"+
			"Первый взнос: %s руб.\n"+
			"Остаток долга: %s руб.\n"+
			"Срок: %d мес.\n"+
			"День оплаты: %d\n"+
			"Залог: %s\n",
		f.Number, f.Date,
		m.BuyerName, m.BuyerPhone,
		m.Item, m.Quantity,
		m.MarkupTotal(), m.PriceTotal(), m.Advance, m.RemainingDebt(),
		m.TermMonths, m.Payday, m.Pledge,
	)
}
