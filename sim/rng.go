// sim/rng.go
package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible run: the same key and
// configuration replay bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemTraffic is the RNG subsystem for traffic setup, currently
	// only the per-flow start jitter. Uses the master seed directly so
	// --seed maps straight onto flow start times.
	SubsystemTraffic = "traffic"

	// SubsystemChannel is the RNG subsystem for the network model:
	// per-packet delay jitter and loss draws.
	SubsystemChannel = "channel"

	// SubsystemControl is the RNG subsystem for routing control-traffic
	// emission.
	SubsystemControl = "control"
)

// PartitionedRNG hands out an isolated, deterministically seeded RNG
// per subsystem, so adding draws in one subsystem never perturbs
// another. Not safe for concurrent use; everything runs on the engine
// goroutine anyway.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG for the named subsystem, creating and
// caching it on first use. The traffic subsystem is seeded with the key
// itself; every other subsystem gets the key XORed with a hash of its
// name.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemTraffic {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
