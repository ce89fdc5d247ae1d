package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmfb/entitylogger/internal/snapshot"
)

func TestClassify_EveryMonsterNameAnyCase(t *testing.T) {
	for _, name := range MonsterNames() {
		variants := []string{
			name,
			strings.ToUpper(name),
			strings.ToUpper(name[:1]) + name[1:],
		}
		for _, v := range variants {
			assert.Equal(t, snapshot.Monster, Classify(v), "Classify(%q)", v)
		}
	}
}

func TestClassify_SubstringMatch(t *testing.T) {
	tests := []struct {
		name string
		want snapshot.Category
	}{
		{"Zombie", snapshot.Monster},
		{"Baby Zombie", snapshot.Monster},
		{"Steve's pet Creeper", snapshot.Monster},
		{"Wither Skeleton", snapshot.Monster},
		{"Zombified Piglin", snapshot.Monster}, // contains "piglin"
		{"Enderman", snapshot.Ignored},
		{"Ghast", snapshot.Ignored},
		{"Cow", snapshot.Ignored},
		{"Villager", snapshot.Ignored},
		{"Item Frame", snapshot.Ignored},
		{"", snapshot.Ignored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, snapshot.Monster, Classify("Cave Spider"))
		assert.Equal(t, snapshot.Ignored, Classify("Armor Stand"))
	}
}

func TestResolve_PlayerTakesPrecedence(t *testing.T) {
	assert.Equal(t, snapshot.Player, Resolve("ZombieSlayer99", true))
	assert.Equal(t, snapshot.Player, Resolve("Alex", true))
	assert.Equal(t, snapshot.Monster, Resolve("ZombieSlayer99", false))
	assert.Equal(t, snapshot.Ignored, Resolve("Alex", false))
}

func TestMonsterNames_ReturnsCopy(t *testing.T) {
	names := MonsterNames()
	require.NotEmpty(t, names)
	names[0] = "cow"

	assert.Equal(t, snapshot.Ignored, Classify("Cow"))
	assert.Equal(t, "zombie", MonsterNames()[0])
}

func TestMonsterNames_AllLowerCase(t *testing.T) {
	for _, name := range MonsterNames() {
		assert.Equal(t, strings.ToLower(name), name)
	}
}
