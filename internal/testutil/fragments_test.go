package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/widl/internal/ir"
)

func TestFragmentBuildersProduceValidFragments(t *testing.T) {
	frag := CallbackFragment("Predicate", Type("boolean"),
		Arg("item", "any"),
		OptionalArg("index", "unsigned long"),
		VariadicArg("rest", "any"),
	)
	assert.Equal(t, ir.KindCallbackFunction, frag.Kind)
	require.Len(t, frag.Arguments, 3)
	assert.True(t, frag.Arguments[1].Optional)
	assert.True(t, frag.Arguments[2].Variadic)

	dict := PartialDictionaryFragment("Options", Member("depth", "long"), RequiredMember("mode", "Mode"))
	assert.True(t, dict.Partial)
	assert.True(t, dict.Members[1].Required)
	assert.False(t, dict.Members[0].Required)
}

func TestDefaultedArgCarriesLiteral(t *testing.T) {
	arg := DefaultedArg("depth", "long", "0")
	require.NotNil(t, arg.Default)
	assert.Equal(t, "0", arg.Default.Literal)
	assert.False(t, arg.Optional)
}

func TestAtSetsModuleAndLocation(t *testing.T) {
	frag := At(EnumFragment("Mode", "auto"), "core", "core.cue", 12)
	assert.Equal(t, "core", frag.Module)
	assert.Equal(t, "core.cue:12:1", frag.Location.String())
}
