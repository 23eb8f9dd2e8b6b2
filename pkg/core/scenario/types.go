// Package scenario defines the scenario document the projection engine reads.
//
// The document is owned by the UI and treated as immutable input: helpers in this
// package that "edit" a scenario return a new value and never touch the receiver.
package scenario

// Section groups categories into the three parts of the model.
type Section string

const (
	SectionCosts       Section = "costs"
	SectionRevenues    Section = "revenues"
	SectionInvestments Section = "investments"
)

// Sections lists the valid sections in display order.
var Sections = []Section{SectionCosts, SectionRevenues, SectionInvestments}

// Cost and investment groups. Revenue groups are free-form (e.g. "licenses", "products").
const (
	GroupDirect     = "direct"
	GroupPersonnel  = "personnel"
	GroupIndirect   = "indirect"
	GroupTangible   = "tangible"
	GroupIntangible = "intangible"
)

// Groups lists the fixed groups per section. A section absent from the map accepts any group.
var Groups = map[Section][]string{
	SectionCosts:       {GroupDirect, GroupPersonnel, GroupIndirect},
	SectionInvestments: {GroupTangible, GroupIntangible},
}

// PriceType discriminates the Price variants.
type PriceType string

const (
	PriceConstant   PriceType = "constant"
	PriceManual     PriceType = "manual"
	PriceRevenue    PriceType = "revenue"
	PriceInvestment PriceType = "investment"
	PriceSalary     PriceType = "salary"
)

// PriceTypes lists every price type the engine understands.
var PriceTypes = []PriceType{PriceConstant, PriceManual, PriceRevenue, PriceInvestment, PriceSalary}

// Scenario is the root document describing one company's assumptions.
type Scenario struct {
	ID             string         `json:"id,omitempty"`
	Title          string         `json:"title,omitempty"`
	Parameters     Parameters     `json:"parameters"`
	Categories     []Category     `json:"categories"`
	Financing      Financing      `json:"financing"`
	InitialBalance InitialBalance `json:"initialBalance"`
}

// Parameters are the scenario-wide settings.
type Parameters struct {
	StartingPeriod         Text   `json:"startingPeriod,omitempty"`
	NumberOfPeriods        Text   `json:"numberOfPeriods,omitempty"`
	Currency               string `json:"currency,omitempty"`
	CorporateTaxRate       Text   `json:"corporateTaxRate,omitempty"`       // percentage
	InterestPayableOnLoans Text   `json:"interestPayableOnLoans,omitempty"` // percentage
	VATRate                Text   `json:"vatRate,omitempty"`                // percentage

	// Working capital day counts
	DaysInStock  Text `json:"daysInStock,omitempty"`
	DaysToBePaid Text `json:"daysToBePaid,omitempty"`
	DaysToPay    Text `json:"daysToPay,omitempty"`
}

// Category is a single cost, revenue or investment line.
type Category struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Section Section `json:"section"`
	Group   string  `json:"group"`
	BMCID   string  `json:"bmcId,omitempty"` // business model canvas slot of a built-in category
	Custom  bool    `json:"custom,omitempty"`
	Deleted bool    `json:"deleted,omitempty"`
	Price   Price   `json:"price"`

	// Quantities per period; a missing period means zero.
	Quantities map[string]Text `json:"quantities,omitempty"`
}

// Price is a tagged union discriminated by Type. Only the fields of the active
// variant are meaningful:
//
//	constant:   Value, Change
//	manual:     Values
//	revenue:    All, Percentage, Percentages
//	investment: Value, DepreciationPeriod
//	salary:     Value, Change, HolidayProvision, SSCEmployer
type Price struct {
	Type PriceType `json:"type"`

	Value  Text `json:"value,omitempty"`
	Change Text `json:"change,omitempty"` // percentage per period

	Values map[string]Text `json:"values,omitempty"`

	All         bool                `json:"all,omitempty"`
	Percentage  Text                `json:"percentage,omitempty"`
	Percentages []RevenuePercentage `json:"percentages,omitempty"`

	DepreciationPeriod Text `json:"depreciationPeriod,omitempty"`

	HolidayProvision Text `json:"holidayProvision,omitempty"`
	SSCEmployer      Text `json:"SSCEmployer,omitempty"`
}

// RevenuePercentage ties a revenue-priced category to one revenue category.
type RevenuePercentage struct {
	CategoryID string `json:"categoryId"`
	Percentage Text   `json:"percentage"`
}

// Financing holds manual, period-keyed financing entries.
type Financing struct {
	EquityContributions         map[string]Text `json:"equityContributions,omitempty"`
	BankLoansCapitalCalls       map[string]Text `json:"bankLoansCapitalCalls,omitempty"`
	OtherSourcesOfFinance       map[string]Text `json:"otherSourcesOfFinance,omitempty"`
	InvestmentsInParticipations map[string]Text `json:"investmentsInParticipations,omitempty"`
}

// InitialBalance holds the opening balance sheet figures shown in the initial period.
type InitialBalance struct {
	TangibleAssets       Text `json:"tangibleAssets,omitempty"`
	IntangibleAssets     Text `json:"intangibleAssets,omitempty"`
	FinancialFixedAssets Text `json:"financialFixedAssets,omitempty"`
	DeferredTaxAsset     Text `json:"deferredTaxAsset,omitempty"`
	LongTermDebt         Text `json:"longTermDebt,omitempty"`
}
