package models

// Plan — тарифный план подписки.
type Plan string

const (
	PlanBasic    Plan = "BASIC"
	PlanStandard Plan = "STANDARD"
	PlanPremium  Plan = "PREMIUM"
)

// Currency — валюта цен тарифов.
const Currency = "FCFA"

// PlanPrice описывает цену и подпись тарифа.
type PlanPrice struct {
	Plan     Plan   `json:"plan"`
	Label    string `json:"label"`
	Price    int    `json:"price"`
	Currency string `json:"currency"`
}

var planPrices = []PlanPrice{
	{Plan: PlanBasic, Label: "Basic", Price: 5000, Currency: Currency},
	{Plan: PlanStandard, Label: "Standard", Price: 10500, Currency: Currency},
	{Plan: PlanPremium, Label: "Premium", Price: 15000, Currency: Currency},
}

// Valid сообщает, является ли значение одним из известных тарифов.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// Label возвращает человекочитаемое название тарифа.
func (p Plan) Label() string {
	for _, pp := range planPrices {
		if pp.Plan == p {
			return pp.Label
		}
	}
	return string(p)
}

// PlanPrices возвращает прайс-лист тарифов в порядке возрастания цены.
func PlanPrices() []PlanPrice {
	out := make([]PlanPrice, len(planPrices))
	copy(out, planPrices)
	return out
}
