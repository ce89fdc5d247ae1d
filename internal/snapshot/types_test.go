package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "MONSTER", Monster.String())
	assert.Equal(t, "PLAYER", Player.String())
	assert.Equal(t, "IGNORED", Ignored.String())
}

func TestCategory_Persisted(t *testing.T) {
	assert.True(t, Monster.Persisted())
	assert.True(t, Player.Persisted())
	assert.False(t, Ignored.Persisted())
}

func TestParseCategory_RoundTrip(t *testing.T) {
	for _, c := range []Category{Ignored, Monster, Player} {
		got, ok := ParseCategory(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := ParseCategory("monster")
	assert.False(t, ok, "column values are upper case only")
}
