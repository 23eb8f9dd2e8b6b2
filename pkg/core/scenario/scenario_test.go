package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scenario_projection/pkg/core/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonScenario = `{
  "id": "acme",
  "parameters": {"startingPeriod": 2016, "numberOfPeriods": "3", "corporateTaxRate": "25%"},
  "categories": [
    {"id": "licenses", "label": "Licenses", "section": "revenues", "group": "licenses",
     "price": {"type": "constant", "value": "10", "change": "+10%"},
     "quantities": {"2016": "1", "2017": 2, "2018": null}}
  ],
  "financing": {"bankLoansCapitalCalls": {"2016": "100k"}}
}`

func TestDecode_JSON(t *testing.T) {
	s, err := scenario.Decode([]byte(jsonScenario), scenario.FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, "acme", s.ID)
	assert.Equal(t, scenario.Text("2016"), s.Parameters.StartingPeriod)
	assert.Equal(t, scenario.Text("3"), s.Parameters.NumberOfPeriods)
	require.Len(t, s.Categories, 1)

	c := s.Categories[0]
	assert.Equal(t, scenario.PriceConstant, c.Price.Type)
	assert.Equal(t, scenario.Text("+10%"), c.Price.Change)
	assert.Equal(t, scenario.Text("1"), c.Quantities["2016"])
	assert.Equal(t, scenario.Text("2"), c.Quantities["2017"])
	assert.Equal(t, scenario.Text(""), c.Quantities["2018"])
	assert.Equal(t, scenario.Text("100k"), s.Financing.BankLoansCapitalCalls["2016"])
}

func TestDecode_RepairsTrailingCommas(t *testing.T) {
	in := `{"id": "acme", "parameters": {"startingPeriod": "2016",}, "categories": [],}`
	s, err := scenario.Decode([]byte(in), scenario.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "acme", s.ID)
	assert.Equal(t, scenario.Text("2016"), s.Parameters.StartingPeriod)
}

func TestDecode_HJSON(t *testing.T) {
	in := `{
  # opening year
  id: acme
  parameters: {
    startingPeriod: 2016
    numberOfPeriods: 2
  }
  categories: [
    {
      id: rent
      label: Rent
      section: costs
      group: indirect
      price: {
        type: manual
        values: { "2016": "1k" }
      }
      quantities: { "2016": 1 }
    }
  ]
}`
	s, err := scenario.Decode([]byte(in), scenario.FormatHJSON)
	require.NoError(t, err)
	assert.Equal(t, "acme", s.ID)
	require.Len(t, s.Categories, 1)
	assert.Equal(t, scenario.PriceManual, s.Categories[0].Price.Type)
	assert.Equal(t, scenario.Text("1k"), s.Categories[0].Price.Values["2016"])
	assert.Equal(t, scenario.Text("1"), s.Categories[0].Quantities["2016"])
}

func TestDecode_YAML(t *testing.T) {
	in := `
id: acme
parameters:
  startingPeriod: 2016
  numberOfPeriods: 3
  interestPayableOnLoans: 4%
categories:
  - id: dev
    label: Developer
    section: costs
    group: personnel
    price:
      type: salary
      value: 4k
      change: 2%
      holidayProvision: 8%
      SSCEmployer: 20%
    quantities:
      2016: 1
      2017: 1.5
`
	s, err := scenario.Decode([]byte(in), scenario.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, scenario.Text("4%"), s.Parameters.InterestPayableOnLoans)
	require.Len(t, s.Categories, 1)
	c := s.Categories[0]
	assert.Equal(t, scenario.PriceSalary, c.Price.Type)
	assert.Equal(t, scenario.Text("20%"), c.Price.SSCEmployer)
	assert.Equal(t, scenario.Text("1.5"), c.Quantities["2017"])
}

func TestDecode_Errors(t *testing.T) {
	_, err := scenario.Decode([]byte("   "), scenario.FormatAuto)
	assert.True(t, errors.Is(err, scenario.ErrDecode))

	_, err = scenario.Decode([]byte(`{"categories": [{"quantities": {"2016": true}}]}`), scenario.FormatJSON)
	assert.True(t, errors.Is(err, scenario.ErrDecode))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acme.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonScenario), 0o644))

	s, err := scenario.DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", s.ID)

	_, err = scenario.DecodeFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := scenario.ParseFormat(".yml")
	require.NoError(t, err)
	assert.Equal(t, scenario.FormatYAML, f)

	_, err = scenario.ParseFormat("xml")
	assert.Error(t, err)
}

func sampleScenario() scenario.Scenario {
	return scenario.Scenario{
		Categories: []scenario.Category{
			{ID: "partners", Label: "Key partners", Section: scenario.SectionCosts, Group: scenario.GroupDirect, BMCID: "keyPartners",
				Quantities: map[string]scenario.Text{"2016": "1"}},
			{ID: "custom-1", Label: "Coffee", Section: scenario.SectionCosts, Group: scenario.GroupIndirect, Custom: true},
			{ID: "sales", Label: "Sales", Section: scenario.SectionRevenues, Group: "products"},
		},
	}
}

func TestWithoutCategory_BuiltInIsFlagged(t *testing.T) {
	s := sampleScenario()

	out, err := s.WithoutCategory("partners")
	require.NoError(t, err)

	c, ok := out.Category("partners")
	require.True(t, ok)
	assert.True(t, c.Deleted)
	assert.Len(t, out.ActiveCategories(), 2)

	// original untouched
	orig, _ := s.Category("partners")
	assert.False(t, orig.Deleted)
}

func TestWithoutCategory_CustomIsRemoved(t *testing.T) {
	s := sampleScenario()

	out, err := s.WithoutCategory("custom-1")
	require.NoError(t, err)

	_, ok := out.Category("custom-1")
	assert.False(t, ok)
	assert.Len(t, out.Categories, 2)
	assert.Len(t, s.Categories, 3)
}

func TestWithoutCategory_Unknown(t *testing.T) {
	_, err := sampleScenario().WithoutCategory("nope")
	assert.True(t, errors.Is(err, scenario.ErrCategoryNotFound))
}

func TestWithCategory_CopyOnWrite(t *testing.T) {
	s := sampleScenario()

	updated := s.Categories[0]
	updated.Label = "Partners"
	out := s.WithCategory(updated)
	c, _ := out.Category("partners")
	assert.Equal(t, "Partners", c.Label)
	orig, _ := s.Category("partners")
	assert.Equal(t, "Key partners", orig.Label)

	added := scenario.NewCustomCategory(scenario.SectionInvestments, scenario.GroupTangible, "Laptop",
		scenario.Price{Type: scenario.PriceInvestment, Value: "1k", DepreciationPeriod: "3"})
	out = out.WithCategory(added)
	assert.Len(t, out.Categories, 4)
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.Custom)
}

func TestClone_Independent(t *testing.T) {
	s := sampleScenario()
	c := s.Clone()
	c.Categories[0].Quantities["2016"] = "99"
	assert.Equal(t, scenario.Text("1"), s.Categories[0].Quantities["2016"])
}

func TestCategoryFilters(t *testing.T) {
	s := sampleScenario()
	assert.Len(t, s.CategoriesBySection(scenario.SectionCosts), 2)
	assert.Len(t, s.CategoriesByGroup(scenario.SectionCosts, scenario.GroupIndirect), 1)
	assert.Len(t, s.CategoriesBySection(scenario.SectionInvestments), 0)
}
