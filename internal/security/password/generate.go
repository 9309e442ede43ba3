package password

import "math/rand/v2"

const (
	Pool            = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	GeneratedLength = 12
)

// Source picks an index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type Generator struct {
	src Source
}

// NewGenerator returns a Generator drawing from src; nil means the
// math/rand/v2 global generator, which is safe for concurrent use.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// Generate draws GeneratedLength characters uniformly, with replacement, from Pool.
// No class is guaranteed to appear.
func (g *Generator) Generate() string {
	b := make([]byte, GeneratedLength)
	for i := range b {
		b[i] = Pool[g.src.IntN(len(Pool))]
	}
	return string(b)
}

var defaultGenerator = NewGenerator(nil)

func Generate() string { return defaultGenerator.Generate() }
