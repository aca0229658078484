package layout

import (
	"regexp"
	"strconv"
)

// idSuffix matches the trailing numeric counter of a node id, e.g. the
// "1042" in "section-1042".
var idSuffix = regexp.MustCompile(`-(\d+)$`)

// Generator produces node ids unique within one editing session, in
// prefix-counter form ("section-1001"). It is an explicit value passed to
// every tree operation rather than package state, so two open documents
// never share a counter.
//
// A generator for a loaded document must be seeded with Seed first:
// restarting the counter at its floor would collide with ids already
// present in legacy documents that were edited through many sessions.
type Generator struct {
	next int
}

// NewGenerator returns a generator whose first id ends in 1001.
func NewGenerator() *Generator {
	return &Generator{next: 1000}
}

// NewSeededGenerator returns a generator seeded above every numeric id
// suffix found in sections.
func NewSeededGenerator(sections []Section) *Generator {
	g := NewGenerator()
	g.Seed(sections)
	return g
}

// Next returns a fresh id with the given prefix. The counter is shared
// across prefixes, so every id in a session is distinguishable by its
// number alone.
func (g *Generator) Next(prefix string) string {
	g.next++
	return prefix + "-" + strconv.Itoa(g.next)
}

// Seed raises the counter above the largest numeric suffix found anywhere
// in sections. Ids without a numeric suffix are ignored.
func (g *Generator) Seed(sections []Section) {
	bump := func(id string) {
		m := idSuffix.FindStringSubmatch(id)
		if m == nil {
			return
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		if n > g.next {
			g.next = n
		}
	}
	for _, s := range sections {
		bump(s.ID)
		for _, r := range s.Rows {
			bump(r.ID)
			for _, c := range r.Columns {
				bump(c.ID)
				for _, m := range c.Modules {
					bump(m.ID)
				}
			}
		}
	}
}
