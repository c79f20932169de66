package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/safegen/internal/codegen/meta"
)

func TestSelectSpecs(t *testing.T) {
	table, err := meta.NewTable([]meta.FunctionSpec{
		{Name: "widget_open", Module: "Widget"},
		{Name: "gadget_spin", Module: "Gadget"},
	})
	require.NoError(t, err)

	all, err := selectSpecs(table, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	picked, err := selectSpecs(table, []string{"GADGET_SPIN"})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	assert.Equal(t, "gadget_spin", picked[0].Name)

	_, err = selectSpecs(table, []string{"nope"})
	assert.ErrorContains(t, err, `"nope"`)
}
