package validate

import (
	"fmt"
	"slices"

	"scenario_projection/pkg/core/period"
	"scenario_projection/pkg/core/pricing"
	"scenario_projection/pkg/core/scenario"
	"scenario_projection/pkg/core/units"
)

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding about a scenario.
type Issue struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

type checker struct {
	issues []Issue
}

func (c *checker) errorf(field, format string, args ...any) {
	c.issues = append(c.issues, Issue{Severity: SeverityError, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) warnf(field, format string, args ...any) {
	c.issues = append(c.issues, Issue{Severity: SeverityWarning, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) value(field string, text scenario.Text) (float64, bool) {
	if units.IsBlank(text.String()) {
		return 0, false
	}
	v, err := units.ParseValue(text.String())
	if err != nil {
		c.errorf(field, "%v", err)
		return 0, false
	}
	return v, true
}

func (c *checker) percentage(field string, text scenario.Text) {
	if units.IsBlank(text.String()) {
		return
	}
	if _, err := units.ParsePercentage(text.String()); err != nil {
		c.errorf(field, "%v", err)
	}
}

// Scenario lints a scenario. Errors are input the engine rejects; warnings point
// at input it tolerates but probably did not mean. Issues are sorted by field.
func Scenario(s scenario.Scenario) []Issue {
	c := &checker{}
	checkParameters(c, s.Parameters)
	checkCategories(c, s)

	for field, entries := range map[string]map[string]scenario.Text{
		"financing.equityContributions":         s.Financing.EquityContributions,
		"financing.bankLoansCapitalCalls":       s.Financing.BankLoansCapitalCalls,
		"financing.otherSourcesOfFinance":       s.Financing.OtherSourcesOfFinance,
		"financing.investmentsInParticipations": s.Financing.InvestmentsInParticipations,
	} {
		for p, text := range entries {
			c.value(fmt.Sprintf("%s[%s]", field, p), text)
		}
	}

	ib := s.InitialBalance
	c.value("initialBalance.tangibleAssets", ib.TangibleAssets)
	c.value("initialBalance.intangibleAssets", ib.IntangibleAssets)
	c.value("initialBalance.financialFixedAssets", ib.FinancialFixedAssets)
	c.value("initialBalance.deferredTaxAsset", ib.DeferredTaxAsset)
	c.value("initialBalance.longTermDebt", ib.LongTermDebt)

	// map iteration above is unordered
	slices.SortStableFunc(c.issues, func(a, b Issue) int {
		switch {
		case a.Field < b.Field:
			return -1
		case a.Field > b.Field:
			return 1
		}
		return 0
	})
	return c.issues
}

func checkParameters(c *checker, p scenario.Parameters) {
	c.value("parameters.startingPeriod", p.StartingPeriod)
	if n, ok := c.value("parameters.numberOfPeriods", p.NumberOfPeriods); ok {
		switch {
		case n > period.MaxPeriods:
			c.warnf("parameters.numberOfPeriods", "%v periods requested, only %d are computed", n, period.MaxPeriods)
		case n <= 0:
			c.warnf("parameters.numberOfPeriods", "no periods to compute")
		}
	} else if units.IsBlank(p.NumberOfPeriods.String()) {
		c.warnf("parameters.numberOfPeriods", "no periods to compute")
	}
	c.percentage("parameters.corporateTaxRate", p.CorporateTaxRate)
	c.percentage("parameters.interestPayableOnLoans", p.InterestPayableOnLoans)
	c.percentage("parameters.vatRate", p.VATRate)
	c.value("parameters.daysInStock", p.DaysInStock)
	c.value("parameters.daysToBePaid", p.DaysToBePaid)
	c.value("parameters.daysToPay", p.DaysToPay)
}

func checkCategories(c *checker, s scenario.Scenario) {
	sections := make(map[string]scenario.Section, len(s.Categories))
	for _, cat := range s.Categories {
		if !cat.Deleted {
			sections[cat.ID] = cat.Section
		}
	}

	seen := make(map[string]bool, len(s.Categories))
	for i, cat := range s.Categories {
		field := fmt.Sprintf("categories[%d]", i)
		if cat.ID == "" {
			c.errorf(field+".id", "category has no id")
		} else {
			field = fmt.Sprintf("categories[%s]", cat.ID)
			if seen[cat.ID] {
				c.errorf(field+".id", "duplicate category id %q", cat.ID)
			}
			seen[cat.ID] = true
		}
		if cat.Deleted {
			continue
		}

		if !slices.Contains(scenario.Sections, cat.Section) {
			c.errorf(field+".section", "unknown section %q", cat.Section)
		} else if groups, fixed := scenario.Groups[cat.Section]; fixed && !slices.Contains(groups, cat.Group) {
			c.errorf(field+".group", "group %q is not valid for section %s (valid: %v)", cat.Group, cat.Section, groups)
		}

		if _, err := pricing.Resolve(cat.Price); err != nil {
			c.errorf(field+".price", "%v", err)
		}
		if _, err := pricing.ParseQuantities(cat.Quantities); err != nil {
			c.errorf(field+".quantities", "%v", err)
		}

		isInvestment := cat.Price.Type == scenario.PriceInvestment
		switch {
		case cat.Section == scenario.SectionInvestments && !isInvestment:
			c.warnf(field+".price.type", "investment category priced as %q is counted as depreciation", cat.Price.Type)
		case cat.Section != scenario.SectionInvestments && isInvestment:
			c.warnf(field+".price.type", "investment pricing outside the investments section")
		}
		if isInvestment && units.IsBlank(cat.Price.DepreciationPeriod.String()) {
			c.warnf(field+".price.depreciationPeriod", "no depreciation period, category is never depreciated")
		}

		if cat.Price.Type == scenario.PriceRevenue {
			if cat.Section == scenario.SectionRevenues {
				c.warnf(field+".price.type", "revenue category priced as a share of revenue always computes to zero")
			}
			for _, rp := range cat.Price.Percentages {
				sec, ok := sections[rp.CategoryID]
				switch {
				case !ok:
					c.warnf(field+".price.percentages", "unknown category %q contributes zero", rp.CategoryID)
				case sec != scenario.SectionRevenues:
					c.warnf(field+".price.percentages", "category %q is not a revenue category and contributes zero", rp.CategoryID)
				}
			}
		}
	}
}
