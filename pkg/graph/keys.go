package graph

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// keyGenerator produces edge keys of the form geid_<instance>_<n>. The
// instance part distinguishes graphs so keys from different graphs rarely
// collide when their edges are merged.
type keyGenerator struct {
	prefix  string
	counter uint64
}

func newKeyGenerator() *keyGenerator {
	instance, _, _ := strings.Cut(uuid.NewString(), "-")
	return &keyGenerator{prefix: "geid_" + instance + "_"}
}

func (k *keyGenerator) next() string {
	key := k.prefix + strconv.FormatUint(k.counter, 10)
	k.counter++
	return key
}

// generateEdgeKey returns a fresh key that is not in use by any edge.
func (g *Graph) generateEdgeKey() string {
	for {
		key := g.keys.next()
		if !g.edges.has(key) {
			return key
		}
	}
}
