package skills

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogWith(t *testing.T) {
	base := Catalog{{Name: "a", Description: "first"}, {Name: "b"}}

	replaced := base.With(Skill{Name: "a", Description: "second"})
	assert.Equal(t, []string{"a", "b"}, replaced.Names())
	assert.Equal(t, "second", replaced[0].Description)
	assert.Equal(t, "first", base[0].Description, "With must not modify the receiver")

	appended := base.With(Skill{Name: "c"})
	assert.Equal(t, []string{"a", "b", "c"}, appended.Names())
	assert.Len(t, base, 2)
}

func TestCatalogLookup(t *testing.T) {
	c := Catalog{{Name: "a", Weight: 0.3}}

	s, ok := c.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 0.3, s.Weight)

	s, ok = c.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, Skill{}, s)

	assert.Empty(t, Catalog(nil).Names())
}

func TestNewStaticCatalog(t *testing.T) {
	provider := NewStaticCatalog(
		Skill{Name: "alpha", Description: "one"},
		Skill{Name: "", Description: "dropped"},
		Skill{Name: "beta", Description: "two", Weight: 0.4},
		Skill{Name: "alpha", Description: "three"},
	)

	catalog, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, catalog.Names())

	alpha, _ := catalog.Lookup("alpha")
	assert.Equal(t, "three", alpha.Description)
	assert.Equal(t, DefaultWeight, alpha.Weight)

	beta, _ := catalog.Lookup("beta")
	assert.Equal(t, 0.4, beta.Weight)
}

func TestNewWeightedStaticCatalog(t *testing.T) {
	provider := NewWeightedStaticCatalog(
		Skill{Name: "muted", Description: "never routed"},
		Skill{Name: "half", Description: "discounted", Weight: 0.5},
		Skill{Name: ""},
	)

	catalog, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"muted", "half"}, catalog.Names())

	muted, _ := catalog.Lookup("muted")
	assert.Zero(t, muted.Weight)
	half, _ := catalog.Lookup("half")
	assert.Equal(t, 0.5, half.Weight)
}

func TestBuiltinsList(t *testing.T) {
	names := Catalog(Builtins()).Names()
	assert.Equal(t, []string{"command-spec-kit", "command-memory-save"}, names)
	for _, b := range Builtins() {
		assert.NotEmpty(t, b.Description)
		assert.Equal(t, DefaultWeight, b.Weight)
	}
}
