package clinic

import (
	"math/rand/v2"
	"time"
)

const (
	MinID = 1000
	MaxID = 9999

	defaultMaxDraws = 64
)

// IDAllocator entrega ids enteros en [Min, Max] que no colisionan con ningún
// id tomado (fichas y turnos comparten el mismo espacio).
// No es thread-safe: el Registry lo usa bajo su lock.
type IDAllocator struct {
	Min, Max int
	MaxDraws int

	rng *rand.Rand
}

func NewIDAllocator() *IDAllocator {
	now := uint64(time.Now().UnixNano())
	return NewIDAllocatorWithSource(rand.NewPCG(now, now>>17|1))
}

// NewIDAllocatorWithSource permite fijar la semilla (tests).
func NewIDAllocatorWithSource(src rand.Source) *IDAllocator {
	return &IDAllocator{
		Min:      MinID,
		Max:      MaxID,
		MaxDraws: defaultMaxDraws,
		rng:      rand.New(src),
	}
}

// Allocate sortea un id libre. Tras MaxDraws colisiones hace un barrido lineal
// desde un offset aleatorio; si el rango está lleno devuelve ErrIdentifierExhausted.
func (a *IDAllocator) Allocate(taken func(int) bool) (int, error) {
	span := a.Max - a.Min + 1
	if span <= 0 {
		return 0, ErrIdentifierExhausted
	}

	for i := 0; i < a.MaxDraws; i++ {
		id := a.Min + a.rng.IntN(span)
		if !taken(id) {
			return id, nil
		}
	}

	start := a.rng.IntN(span)
	for i := 0; i < span; i++ {
		id := a.Min + (start+i)%span
		if !taken(id) {
			return id, nil
		}
	}
	return 0, ErrIdentifierExhausted
}
