package command

import "testing"

func TestParseConfirm(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"✅ Сгенерировать", Generate},
		{"сгенерировать", Generate},
		{"✏️ Исправить", Edit},
		{"исправить", Edit},
		{"⛔️ Отмена", Cancel},
		{"отмена", Cancel},
		{"ОТМЕНА", Cancel},
		{"", None},
		{"что-то другое", None},
		{"да", None},
	}
	for _, c := range cases {
		if got := ParseConfirm(c.in); got != c.want {
			t.Errorf("ParseConfirm(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestChoose(t *testing.T) {
	options := map[string][]string{
		"murabaha": {"мурабах"},
		"istisna":  {"истисн"},
	}
	cases := []struct {
		in   string
		want string
	}{
		{"Мурабаха", "murabaha"},
		{"мурабаха  ", "murabaha"},
		{"Истисна", "istisna"},
		{"хочу истисну", "istisna"},
		{"нечто", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Choose(c.in, options, "murabaha", "istisna"); got != c.want {
			t.Errorf("Choose(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestYesNo(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Да", "Да"},
		{"да", "Да"},
		{"НЕТ", "Нет"},
		{" нет ", "Нет"},
		{"может", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := YesNo(c.in); got != c.want {
			t.Errorf("YesNo(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
