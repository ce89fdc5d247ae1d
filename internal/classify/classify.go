// Package classify decides which host entities a refresh cycle records.
//
// A name is a monster when its lower-cased form contains any entry of a fixed
// substring set. Player status comes from the host's runtime type and is
// never inferred from the name.
package classify

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mmfb/entitylogger/internal/snapshot"
)

// monsterNames is the hostile-mob substring set. Enderman, zombified piglin
// and ghast are deliberately absent.
var monsterNames = []string{
	// early game
	"zombie", "skeleton", "creeper", "spider", "witch", "slime",

	// nether
	"blaze", "wither skeleton", "magma cube", "hoglin", "piglin", "piglin brute",
	"wither", "strider",

	// aquatic
	"drowned", "guardian", "elder guardian", "pufferfish",

	// variants
	"husk", "stray", "bogged", "zombie villager", "cave spider",

	// illagers
	"pillager", "vindicator", "evoker", "ravager", "vex", "illusioner",

	// end
	"endermite", "shulker",

	// newer mobs
	"warden", "breeze",

	// jockeys
	"chicken jockey", "spider jockey", "skeleton horseman",

	// rare
	"silverfish", "killer bunny",
}

// MonsterNames returns a copy of the monster substring set.
func MonsterNames() []string {
	return slices.Clone(monsterNames)
}

// Classify maps a display name to Monster or Ignored.
// Matching is a case-insensitive substring test, not a whole-word match.
func Classify(displayName string) snapshot.Category {
	lower := fold(displayName)
	for _, m := range monsterNames {
		if strings.Contains(lower, m) {
			return snapshot.Monster
		}
	}
	return snapshot.Ignored
}

// Resolve combines the name rule with the host's player-type predicate.
// A player is always Player, even if its name contains a monster substring.
func Resolve(displayName string, isPlayer bool) snapshot.Category {
	if isPlayer {
		return snapshot.Player
	}
	return Classify(displayName)
}

// fold lower-cases s. A Caser carries state, so one is built per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
