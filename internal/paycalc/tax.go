package paycalc

// TaxRates — плоские оценочные ставки удержаний. Это не налоговый движок:
// без шкал, статусов подачи и выбора юрисдикции.
type TaxRates struct {
	Federal        float64 `json:"federal"`
	State          float64 `json:"state"`
	SocialSecurity float64 `json:"social_security"`
	Medicare       float64 `json:"medicare"`
}

func DefaultTaxRates() TaxRates {
	return TaxRates{
		Federal:        0.12,
		State:          0.0305,
		SocialSecurity: 0.062,
		Medicare:       0.0145,
	}
}

// NetPayDetails — разбивка брутто-зарплаты на удержания и остаток
type NetPayDetails struct {
	GrossPay       float64 `json:"gross_pay"`
	Federal        float64 `json:"federal"`
	State          float64 `json:"state"`
	SocialSecurity float64 `json:"social_security"`
	Medicare       float64 `json:"medicare"`
	TotalTax       float64 `json:"total_tax"`
	NetPay         float64 `json:"net_pay"`
}

// NetPay раскладывает брутто на четыре независимых удержания и остаток.
func NetPay(grossPay float64, rates TaxRates) NetPayDetails {
	federal := grossPay * rates.Federal
	state := grossPay * rates.State
	socialSecurity := grossPay * rates.SocialSecurity
	medicare := grossPay * rates.Medicare

	totalTax := federal + state + socialSecurity + medicare

	return NetPayDetails{
		GrossPay:       round2(grossPay),
		Federal:        round2(federal),
		State:          round2(state),
		SocialSecurity: round2(socialSecurity),
		Medicare:       round2(medicare),
		TotalTax:       round2(totalTax),
		NetPay:         round2(grossPay - totalTax),
	}
}
