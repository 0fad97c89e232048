package models

// Statement holds raw balance-sheet and income-statement figures as supplied
// by a user or an input file. A nil field means the figure was not provided;
// the scanner may estimate it or reject the statement.
//
// Magnitude items (assets, liabilities, equity, sales, inventories) must be
// non-negative. Items that can represent a loss (net income, EBIT, working
// capital, retained earnings) may be negative.
type Statement struct {
	// Balance sheet
	CurrentAssets        *float64 `json:"current_assets"         yaml:"current_assets"         toml:"current_assets"         validate:"required,gte=0"`
	CurrentLiabilities   *float64 `json:"current_liabilities"    yaml:"current_liabilities"    toml:"current_liabilities"    validate:"required,gte=0"`
	Cash                 *float64 `json:"cash"                   yaml:"cash"                   toml:"cash"                   validate:"omitempty,gte=0"`
	ShortTermInvestments *float64 `json:"short_term_investments" yaml:"short_term_investments" toml:"short_term_investments" validate:"omitempty,gte=0"`
	Inventories          *float64 `json:"inventories"            yaml:"inventories"            toml:"inventories"            validate:"omitempty,gte=0"`
	AverageInventory     *float64 `json:"average_inventory"      yaml:"average_inventory"      toml:"average_inventory"      validate:"omitempty,gte=0"`
	Receivables          *float64 `json:"receivables"            yaml:"receivables"            toml:"receivables"            validate:"omitempty,gte=0"`
	Payables             *float64 `json:"payables"               yaml:"payables"               toml:"payables"               validate:"omitempty,gte=0"`
	TotalAssets          *float64 `json:"total_assets"           yaml:"total_assets"           toml:"total_assets"           validate:"required,gte=0"`
	TotalLiabilities     *float64 `json:"total_liabilities"      yaml:"total_liabilities"      toml:"total_liabilities"      validate:"required,gte=0"`
	Equity               *float64 `json:"equity"                 yaml:"equity"                 toml:"equity"                 validate:"required,gte=0"`
	MarketValueEquity    *float64 `json:"market_value_equity"    yaml:"market_value_equity"    toml:"market_value_equity"    validate:"omitempty,gte=0"`

	// Income statement
	Sales           *float64 `json:"sales"            yaml:"sales"            toml:"sales"            validate:"required,gte=0"`
	CreditSales     *float64 `json:"credit_sales"     yaml:"credit_sales"     toml:"credit_sales"     validate:"omitempty,gte=0"`
	CreditPurchases *float64 `json:"credit_purchases" yaml:"credit_purchases" toml:"credit_purchases" validate:"omitempty,gte=0"`
	CostOfSales     *float64 `json:"cost_of_sales"    yaml:"cost_of_sales"    toml:"cost_of_sales"    validate:"omitempty,gte=0"`
	NetIncome       *float64 `json:"net_income"       yaml:"net_income"       toml:"net_income"       validate:"required"`
	EBIT            *float64 `json:"ebit"             yaml:"ebit"             toml:"ebit"             validate:"required"`

	// Z-Score aggregates
	WorkingCapital   *float64 `json:"working_capital"   yaml:"working_capital"   toml:"working_capital"`
	RetainedEarnings *float64 `json:"retained_earnings" yaml:"retained_earnings" toml:"retained_earnings"`
}

// Financials is a fully resolved input set: every figure the engine needs is
// present. It exists only for the duration of one assessment.
type Financials struct {
	CurrentAssets        float64 `json:"current_assets"`
	CurrentLiabilities   float64 `json:"current_liabilities"`
	Cash                 float64 `json:"cash"`
	ShortTermInvestments float64 `json:"short_term_investments"`
	Inventories          float64 `json:"inventories"`
	AverageInventory     float64 `json:"average_inventory"`
	Receivables          float64 `json:"receivables"`
	Payables             float64 `json:"payables"`
	TotalAssets          float64 `json:"total_assets"`
	TotalLiabilities     float64 `json:"total_liabilities"`
	Equity               float64 `json:"equity"`
	MarketValueEquity    float64 `json:"market_value_equity"`
	Sales                float64 `json:"sales"`
	CreditSales          float64 `json:"credit_sales"`
	CreditPurchases      float64 `json:"credit_purchases"`
	CostOfSales          float64 `json:"cost_of_sales"`
	NetIncome            float64 `json:"net_income"`
	EBIT                 float64 `json:"ebit"`
	WorkingCapital       float64 `json:"working_capital"`
	RetainedEarnings     float64 `json:"retained_earnings"`
}

// Company is one input document: identifying metadata plus its figures.
type Company struct {
	Name     string    `json:"name"     yaml:"name"     toml:"name"`
	Period   string    `json:"period"   yaml:"period"   toml:"period"`   // e.g., "FY2024"
	Currency string    `json:"currency" yaml:"currency" toml:"currency"` // e.g., "USD", "EUR"
	Figures  Statement `json:"figures"  yaml:"figures"  toml:"figures"`
}

// Float returns a pointer to v. Handy for building statements in code.
func Float(v float64) *float64 {
	return &v
}
