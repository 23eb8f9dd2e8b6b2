package scenario

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when an edit references an unknown category id.
var ErrCategoryNotFound = errors.New("scenario: category not found")

// NewCustomCategory creates a user-defined category with a fresh id.
func NewCustomCategory(section Section, group, label string, price Price) Category {
	return Category{
		ID:         uuid.NewString(),
		Label:      label,
		Section:    section,
		Group:      group,
		Custom:     true,
		Price:      price,
		Quantities: map[string]Text{},
	}
}

// Clone returns a deep copy of the scenario.
func (s Scenario) Clone() Scenario {
	out := s
	out.Categories = make([]Category, len(s.Categories))
	for i, c := range s.Categories {
		out.Categories[i] = c.Clone()
	}
	out.Financing = Financing{
		EquityContributions:         cloneTexts(s.Financing.EquityContributions),
		BankLoansCapitalCalls:       cloneTexts(s.Financing.BankLoansCapitalCalls),
		OtherSourcesOfFinance:       cloneTexts(s.Financing.OtherSourcesOfFinance),
		InvestmentsInParticipations: cloneTexts(s.Financing.InvestmentsInParticipations),
	}
	return out
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	out.Quantities = cloneTexts(c.Quantities)
	out.Price.Values = cloneTexts(c.Price.Values)
	if c.Price.Percentages != nil {
		out.Price.Percentages = append([]RevenuePercentage(nil), c.Price.Percentages...)
	}
	return out
}

// Category looks a category up by id, deleted ones included.
func (s Scenario) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ActiveCategories returns every category that is not soft-deleted.
func (s Scenario) ActiveCategories() []Category {
	out := make([]Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if !c.Deleted {
			out = append(out, c)
		}
	}
	return out
}

// CategoriesBySection returns the active categories of one section.
func (s Scenario) CategoriesBySection(section Section) []Category {
	var out []Category
	for _, c := range s.Categories {
		if !c.Deleted && c.Section == section {
			out = append(out, c)
		}
	}
	return out
}

// CategoriesByGroup returns the active categories of one section and group.
func (s Scenario) CategoriesByGroup(section Section, group string) []Category {
	var out []Category
	for _, c := range s.CategoriesBySection(section) {
		if c.Group == group {
			out = append(out, c)
		}
	}
	return out
}

// WithCategory returns a copy of s where c replaces the category with the same id,
// or is appended when the id is new.
func (s Scenario) WithCategory(c Category) Scenario {
	out := s.Clone()
	for i := range out.Categories {
		if out.Categories[i].ID == c.ID {
			out.Categories[i] = c.Clone()
			return out
		}
	}
	out.Categories = append(out.Categories, c.Clone())
	return out
}

// WithoutCategory returns a copy of s with the category deleted. Built-in categories
// are flagged as deleted so their canvas slot survives; custom ones are removed.
func (s Scenario) WithoutCategory(id string) (Scenario, error) {
	out := s.Clone()
	for i, c := range out.Categories {
		if c.ID != id {
			continue
		}
		if c.Custom {
			out.Categories = append(out.Categories[:i], out.Categories[i+1:]...)
		} else {
			out.Categories[i].Deleted = true
		}
		return out, nil
	}
	return s, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

func cloneTexts(m map[string]Text) map[string]Text {
	if m == nil {
		return nil
	}
	out := make(map[string]Text, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
