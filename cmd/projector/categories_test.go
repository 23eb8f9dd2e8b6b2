package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario_projection/pkg/core/scenario"
)

func decodeOutput(t *testing.T, out string) scenario.Scenario {
	t.Helper()
	var s scenario.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	return s
}

func TestCategories_List(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML+`
  - id: old-rent
    label: Old rent
    section: costs
    group: indirect
    deleted: true
    price:
      type: constant
      value: "500"
`)

	out, err := run(t, "categories", "list", path)
	require.NoError(t, err)
	assert.Equal(t, "sales\trevenues\tproducts\tSales\n", out)
}

func TestCategories_Add(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)

	out, err := run(t, "categories", "add", path, "--label", "Rent", "--value", "1.5k")
	require.NoError(t, err)

	s := decodeOutput(t, out)
	require.Len(t, s.Categories, 2)
	added := s.Categories[1]
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.Custom)
	assert.Equal(t, "Rent", added.Label)
	assert.Equal(t, scenario.SectionCosts, added.Section)
	assert.Equal(t, scenario.GroupIndirect, added.Group)
	assert.Equal(t, scenario.PriceConstant, added.Price.Type)
	assert.Equal(t, scenario.Text("1.5k"), added.Price.Value)
}

func TestCategories_AddRejectsInvalidGroup(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)

	out, err := run(t, "categories", "add", path, "--label", "Staff", "--group", "salaries", "--value", "3k")
	assert.ErrorIs(t, err, errInvalidScenario)
	assert.Contains(t, out, ".group")

	_, err = run(t, "categories", "add", path, "--value", "3k")
	assert.Error(t, err, "label is required")
}

func TestCategories_Remove(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML+`
  - id: fair
    label: Trade fair
    section: costs
    group: indirect
    custom: true
    price:
      type: constant
      value: "2k"
`)

	out, err := run(t, "categories", "remove", path, "sales")
	require.NoError(t, err)
	s := decodeOutput(t, out)
	require.Len(t, s.Categories, 2)
	assert.True(t, s.Categories[0].Deleted, "built-in categories are flagged, not dropped")

	out, err = run(t, "categories", "remove", path, "fair")
	require.NoError(t, err)
	s = decodeOutput(t, out)
	require.Len(t, s.Categories, 1)
	assert.Equal(t, "sales", s.Categories[0].ID)

	_, err = run(t, "categories", "remove", path, "nope")
	assert.ErrorIs(t, err, scenario.ErrCategoryNotFound)
}
