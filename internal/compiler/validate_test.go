package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
	"github.com/roach88/widl/internal/testutil"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateAcceptsWellFormedFragments(t *testing.T) {
	frags := []*registry.Fragment{
		testutil.CallbackFragment("Predicate", testutil.Type("boolean"), testutil.Arg("item", "any")),
		testutil.InterfaceFragment("Widget", testutil.Operation("render", testutil.Type("undefined"))),
		testutil.DictionaryFragment("Options", testutil.Member("mode", "Mode")),
		testutil.EnumFragment("Mode", "auto", "manual"),
		testutil.TypedefFragment("Score", testutil.Type("double")),
		testutil.NamespaceFragment("Utils"),
	}

	for _, frag := range frags {
		assert.Empty(t, Validate(frag), frag.Identifier)
	}
}

func TestValidateEmptyIdentifier(t *testing.T) {
	frag := testutil.EnumFragment("   ", "a")
	errs := Validate(frag)
	require.NotEmpty(t, errs)
	assert.Contains(t, codes(errs), ErrIdentifierEmpty)
}

func TestValidateUnknownKindShortCircuits(t *testing.T) {
	frag := &registry.Fragment{Identifier: "X", Kind: ir.Kind("widget")}
	errs := Validate(frag)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownKind, errs[0].Code)
}

func TestValidatePartialOnNonPartialableKind(t *testing.T) {
	frag := testutil.EnumFragment("Mode", "a")
	frag.Partial = true
	errs := Validate(frag)
	assert.Contains(t, codes(errs), ErrPartialNotAllowed)
}

func TestValidateDuplicateArgumentNames(t *testing.T) {
	frag := testutil.CallbackFragment("CB", testutil.Type("undefined"),
		testutil.Arg("a", "long"),
		testutil.Arg("a", "long"))
	errs := Validate(frag)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateArgName, errs[0].Code)
	assert.Equal(t, "args[1].name", errs[0].Field)
}

func TestValidateOperationArgumentNames(t *testing.T) {
	frag := testutil.InterfaceFragment("Widget",
		testutil.Operation("op", testutil.Type("undefined"),
			testutil.Arg("x", "long"),
			testutil.Arg("x", "long")))
	errs := Validate(frag)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateArgName, errs[0].Code)
	assert.Equal(t, "operations[0].args[1].name", errs[0].Field)
}

func TestValidateDuplicateInterfaceMembers(t *testing.T) {
	frag := testutil.InterfaceFragment("Widget",
		testutil.Operation("render", testutil.Type("undefined")),
		testutil.Operation("render", testutil.Type("undefined")))
	frag.Attributes = []ir.Attribute{
		{Name: "size", Type: testutil.Type("long")},
		{Name: "size", Type: testutil.Type("long")},
	}
	frag.Constants = []ir.Constant{
		{Name: "MAX", Type: testutil.Type("long"), Value: "1"},
		{Name: "MAX", Type: testutil.Type("long"), Value: "2"},
	}

	errs := Validate(frag)
	assert.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, ErrDuplicateMemberName, e.Code)
	}
}

func TestValidateDictionaryMembers(t *testing.T) {
	frag := testutil.DictionaryFragment("Options",
		testutil.Member("mode", "Mode"),
		testutil.Member("mode", "Mode"))
	errs := Validate(frag)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateMemberName, errs[0].Code)
}

func TestValidateEnumeration(t *testing.T) {
	empty := testutil.EnumFragment("Mode")
	errs := Validate(empty)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrEnumEmpty, errs[0].Code)

	dup := testutil.EnumFragment("Mode", "auto", "auto")
	errs = Validate(dup)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrEnumDuplicateValue, errs[0].Code)
}

func TestValidateTypedefTarget(t *testing.T) {
	frag := testutil.TypedefFragment("Alias", ir.TypeRef{})
	errs := Validate(frag)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrTypedefNoTarget, errs[0].Code)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	frag := testutil.EnumFragment("", "a", "a")
	frag.Partial = true

	got := codes(Validate(frag))
	assert.Contains(t, got, ErrIdentifierEmpty)
	assert.Contains(t, got, ErrPartialNotAllowed)
	assert.Contains(t, got, ErrEnumDuplicateValue)
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "values", Message: "bad", Code: ErrEnumEmpty}
	assert.Equal(t, "[E105] values: bad", err.Error())
}
