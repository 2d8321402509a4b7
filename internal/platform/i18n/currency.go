package i18n

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormatter はロケールと通貨に従って給与を整形します。
type CurrencyFormatter struct {
	tag  language.Tag
	unit currency.Unit
}

// NewCurrencyFormatter は BCP 47 の言語タグと ISO 4217 の通貨コードから CurrencyFormatter を生成します。
func NewCurrencyFormatter(lang, code string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse language %q: %w", lang, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse currency %q: %w", code, err)
	}
	return &CurrencyFormatter{tag: tag, unit: unit}, nil
}

// FormatSalary は金額を通貨記号付き・桁区切り・通貨の小数桁で整形します。
func (f *CurrencyFormatter) FormatSalary(amount float64) string {
	return message.NewPrinter(f.tag).Sprint(currency.Symbol(f.unit.Amount(amount)))
}
