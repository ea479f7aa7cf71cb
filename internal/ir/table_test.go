package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTablePreservesOrder(t *testing.T) {
	decls := []Declaration{
		NewEnumeration("Mode", []string{"a"}, Traits{}),
		NewTypedef("Alias", TypeRef{Name: "long"}, Traits{}),
		NewNamespace("Utils", nil, nil, Traits{}),
	}

	table, err := NewTable(decls)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"Mode", "Alias", "Utils"}, table.Identifiers())

	all := table.Declarations()
	require.Len(t, all, 3)
	assert.Equal(t, "Mode", all[0].Identifier())
}

func TestNewTableRejectsDuplicateIdentifiers(t *testing.T) {
	decls := []Declaration{
		NewEnumeration("Mode", []string{"a"}, Traits{}),
		NewEnumeration("Mode", []string{"b"}, Traits{}),
	}

	_, err := NewTable(decls)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate frozen identifier "Mode"`)
}

func TestTableLookup(t *testing.T) {
	table, err := NewTable([]Declaration{
		NewEnumeration("Mode", []string{"a"}, Traits{}),
	})
	require.NoError(t, err)

	d, ok := table.Lookup("Mode")
	require.True(t, ok)
	assert.True(t, d.IsEnumeration())

	_, ok = table.Lookup("Missing")
	assert.False(t, ok)
}

func TestTableByKind(t *testing.T) {
	table, err := NewTable([]Declaration{
		NewEnumeration("A", []string{"x"}, Traits{}),
		NewTypedef("B", TypeRef{Name: "long"}, Traits{}),
		NewEnumeration("C", []string{"y"}, Traits{}),
	})
	require.NoError(t, err)

	enums := table.ByKind(KindEnumeration)
	require.Len(t, enums, 2)
	assert.Equal(t, "A", enums[0].Identifier())
	assert.Equal(t, "C", enums[1].Identifier())

	assert.Empty(t, table.ByKind(KindInterface))
}

func TestEmptyTable(t *testing.T) {
	table, err := NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Identifiers())
}
