package labels

import (
	"fmt"
	"math/rand"
)

const maxAttempts = 64

// Generator hands out labels and action verbs that are unique for its lifetime. A match creates one per level and
// shares it across every board of that level.
type Generator struct {
	words       *Words
	rng         *rand.Rand
	usedNouns   map[string]bool
	usedNames   map[string]bool
	usedVerbs   map[string]bool
	verbOverrun int
}

func NewGenerator(words *Words, rng *rand.Rand) *Generator {
	return &Generator{
		words:     words,
		rng:       rng,
		usedNouns: make(map[string]bool),
		usedNames: make(map[string]bool),
		usedVerbs: make(map[string]bool),
	}
}

// Name returns either a prefixed compound ("turboflux") or an adjective and a noun ("quantum valve"). Nouns are not
// reused while fresh ones can still be found; once the list runs dry a numeric suffix keeps labels unique.
func (g *Generator) Name() string {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		noun := g.pick(g.words.Nouns)
		if g.usedNouns[noun] && attempt < maxAttempts/2 {
			continue
		}

		label := g.compose(noun)
		if g.usedNames[label] {
			continue
		}
		g.usedNouns[noun] = true
		g.usedNames[label] = true
		return label
	}

	base := g.compose(g.pick(g.words.Nouns))
	label := base
	for i := 2; g.usedNames[label]; i++ {
		label = fmt.Sprintf("%s %d", base, i)
	}
	g.usedNames[label] = true
	return label
}

// Action returns a verb not handed out before.
func (g *Generator) Action() string {
	if len(g.usedVerbs) < len(g.words.Verbs) {
		for {
			verb := g.pick(g.words.Verbs)
			if !g.usedVerbs[verb] {
				g.usedVerbs[verb] = true
				return verb
			}
		}
	}

	g.verbOverrun++
	return fmt.Sprintf("%s %d", g.pick(g.words.Verbs), g.verbOverrun+1)
}

func (g *Generator) compose(noun string) string {
	useAdjective := len(g.words.Adjectives) > 0 && (len(g.words.Prefixes) == 0 || g.rng.Intn(3) == 0)
	if useAdjective {
		return fmt.Sprintf("%s %s", g.pick(g.words.Adjectives), noun)
	}
	if len(g.words.Prefixes) == 0 {
		return noun
	}

	prefix := g.pick(g.words.Prefixes)
	if prefix[len(prefix)-1] == noun[0] {
		return prefix + "-" + noun
	}
	return prefix + noun
}

func (g *Generator) pick(list []string) string {
	return list[g.rng.Intn(len(list))]
}
