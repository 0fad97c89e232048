package validate

import (
	"strings"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// lineItems maps each canonical line-item name (the json tag on
// models.Statement) to its field.
var lineItems = map[string]func(*models.Statement) **float64{
	"current_assets":         func(s *models.Statement) **float64 { return &s.CurrentAssets },
	"current_liabilities":    func(s *models.Statement) **float64 { return &s.CurrentLiabilities },
	"cash":                   func(s *models.Statement) **float64 { return &s.Cash },
	"short_term_investments": func(s *models.Statement) **float64 { return &s.ShortTermInvestments },
	"inventories":            func(s *models.Statement) **float64 { return &s.Inventories },
	"average_inventory":      func(s *models.Statement) **float64 { return &s.AverageInventory },
	"receivables":            func(s *models.Statement) **float64 { return &s.Receivables },
	"payables":               func(s *models.Statement) **float64 { return &s.Payables },
	"total_assets":           func(s *models.Statement) **float64 { return &s.TotalAssets },
	"total_liabilities":      func(s *models.Statement) **float64 { return &s.TotalLiabilities },
	"equity":                 func(s *models.Statement) **float64 { return &s.Equity },
	"market_value_equity":    func(s *models.Statement) **float64 { return &s.MarketValueEquity },
	"sales":                  func(s *models.Statement) **float64 { return &s.Sales },
	"credit_sales":           func(s *models.Statement) **float64 { return &s.CreditSales },
	"credit_purchases":       func(s *models.Statement) **float64 { return &s.CreditPurchases },
	"cost_of_sales":          func(s *models.Statement) **float64 { return &s.CostOfSales },
	"net_income":             func(s *models.Statement) **float64 { return &s.NetIncome },
	"ebit":                   func(s *models.Statement) **float64 { return &s.EBIT },
	"working_capital":        func(s *models.Statement) **float64 { return &s.WorkingCapital },
	"retained_earnings":      func(s *models.Statement) **float64 { return &s.RetainedEarnings },
}

// signedItems may legitimately be negative. Every other line item is a
// magnitude.
var signedItems = map[string]bool{
	"net_income":        true,
	"ebit":              true,
	"working_capital":   true,
	"retained_earnings": true,
}

// aliases maps normalized alternative labels, English and Spanish, to the
// canonical name.
var aliases = map[string]string{
	// Balance sheet
	"activo_corriente":                "current_assets",
	"total_current_assets":            "current_assets",
	"pasivo_corriente":                "current_liabilities",
	"total_current_liabilities":       "current_liabilities",
	"efectivo":                        "cash",
	"cash_and_equivalents":            "cash",
	"cash_and_cash_equivalents":       "cash",
	"inversiones_a_corto_plazo":       "short_term_investments",
	"marketable_securities":           "short_term_investments",
	"inventarios":                     "inventories",
	"inventory":                       "inventories",
	"inventario_promedio":             "average_inventory",
	"cuentas_por_cobrar":              "receivables",
	"accounts_receivable":             "receivables",
	"cuentas_por_pagar":               "payables",
	"accounts_payable":                "payables",
	"activo_total":                    "total_assets",
	"pasivo_total":                    "total_liabilities",
	"patrimonio":                      "equity",
	"total_equity":                    "equity",
	"shareholders_equity":             "equity",
	"valor_de_mercado_del_patrimonio": "market_value_equity",
	"market_capitalization":           "market_value_equity",
	"market_cap":                      "market_value_equity",

	// Income statement
	"ventas":               "sales",
	"revenue":              "sales",
	"net_sales":            "sales",
	"ventas_a_credito":     "credit_sales",
	"compras_a_credito":    "credit_purchases",
	"costo_ventas":         "cost_of_sales",
	"costo_de_ventas":      "cost_of_sales",
	"cost_of_goods_sold":   "cost_of_sales",
	"cogs":                 "cost_of_sales",
	"utilidad_neta":        "net_income",
	"net_profit":           "net_income",
	"operating_income":     "ebit",
	"capital_de_trabajo":   "working_capital",
	"utilidades_retenidas": "retained_earnings",
}

// LineItem resolves a free-form label such as "Current assets",
// "current-assets" or "Activo corriente" to its canonical line-item name.
func LineItem(label string) (string, bool) {
	key := normalizeLabel(label)
	if _, ok := lineItems[key]; ok {
		return key, true
	}
	name, ok := aliases[key]
	return name, ok
}

// Set stores v in the named line item of s. It reports false for an unknown
// canonical name.
func Set(s *models.Statement, name string, v float64) bool {
	field, ok := lineItems[name]
	if !ok {
		return false
	}
	*field(s) = models.Float(v)
	return true
}

func normalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.TrimSuffix(s, ":")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case 'á':
			return 'a'
		case 'é':
			return 'e'
		case 'í':
			return 'i'
		case 'ó':
			return 'o'
		case 'ú':
			return 'u'
		case 'ñ':
			return 'n'
		case ' ', '-', '/', '.':
			return '_'
		}
		return r
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
