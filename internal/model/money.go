package model

import "github.com/shopspring/decimal"

// MoneyScale は金額の小数点以下桁数。NUMERIC(10,2)に合わせる。
const MoneyScale = 2

func init() {
	// 金額はJSON上で数値（9.99）として扱う。文字列（"9.99"）にはしない。
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney は金額をMoneyScale桁に丸める。
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// nonNegativeMoney は指定された金額が負でないことを検証する。未指定は許可する。
func nonNegativeMoney(field string, v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return NewInvalidValueError(field, "must be >= 0")
	}
	return nil
}
