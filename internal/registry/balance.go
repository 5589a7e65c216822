// Balancer strategies for picking one instance out of a Resolve() list,
// adapted from the teacher's loadbalance package. A client only ever
// has to choose one server to dial, so these see far less traffic than
// their RPC-server counterparts, but the same three strategies fit:
// round robin for interchangeable servers, weighted random for
// heterogeneous capacity, and consistent hashing for session affinity
// (pinning a given account UUID to the same server across reconnects
// in a fleet of bot clients behind one registry entry).
package registry

import (
	"fmt"
	"hash/crc32"
	"math/rand"
	"sort"
	"sync/atomic"
)

// Balancer selects one instance from a resolved list.
type Balancer interface {
	Pick(instances []Instance) (*Instance, error)
	Name() string
}

// RoundRobinBalancer cycles through instances in order using a
// lock-free atomic counter, exactly like loadbalance.RoundRobinBalancer.
type RoundRobinBalancer struct {
	counter int64
}

func (b *RoundRobinBalancer) Pick(instances []Instance) (*Instance, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("registry: no instances available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(instances))
	return &instances[index], nil
}

func (b *RoundRobinBalancer) Name() string { return "RoundRobin" }

// WeightedRandomBalancer picks an instance with probability proportional
// to its Weight, exactly like loadbalance.WeightedRandomBalancer.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(instances []Instance) (*Instance, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("registry: no instances available")
	}

	total := 0
	for _, inst := range instances {
		total += inst.Weight
	}
	if total <= 0 {
		return &instances[rand.Intn(len(instances))], nil
	}

	r := rand.Intn(total)
	for i := range instances {
		r -= instances[i].Weight
		if r < 0 {
			return &instances[i], nil
		}
	}
	return nil, fmt.Errorf("registry: unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string { return "WeightedRandom" }

// AffinityBalancer maps a caller-supplied key (e.g. an account UUID) to
// the same instance on every call via a hash ring with virtual nodes,
// adapted from loadbalance.ConsistentHashBalancer. Unlike the other two
// balancers it is keyed, not round-robin — callers use PickFor, and
// Pick falls back to the first ring entry since Balancer.Pick carries
// no key.
type AffinityBalancer struct {
	replicas int
	ring     []uint32
	nodes    map[uint32]*Instance
}

// NewAffinityBalancer creates a hash ring with 100 virtual nodes per
// instance, the same density the teacher found sufficient for uniform
// spread.
func NewAffinityBalancer() *AffinityBalancer {
	return &AffinityBalancer{
		replicas: 100,
		nodes:    make(map[uint32]*Instance),
	}
}

// Add places an instance onto the ring with replicas virtual nodes.
func (b *AffinityBalancer) Add(inst *Instance) {
	for i := 0; i < b.replicas; i++ {
		key := fmt.Sprintf("%s#%d", inst.Addr, i)
		hash := crc32.ChecksumIEEE([]byte(key))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = inst
	}
	sort.Slice(b.ring, func(i, j int) bool { return b.ring[i] < b.ring[j] })
}

// PickFor returns the instance responsible for key, binary-searching
// for the first ring position at or after key's hash and wrapping
// around to the first node if key's hash is larger than all of them.
func (b *AffinityBalancer) PickFor(key string) (*Instance, error) {
	if len(b.ring) == 0 {
		return nil, fmt.Errorf("registry: affinity ring is empty")
	}
	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool { return b.ring[i] >= hash })
	if idx == len(b.ring) {
		idx = 0
	}
	return b.nodes[b.ring[idx]], nil
}

// Pick ignores instances and returns the first ring entry, since it
// has no key to hash.
func (b *AffinityBalancer) Pick(instances []Instance) (*Instance, error) {
	if len(b.ring) == 0 {
		return nil, fmt.Errorf("registry: affinity ring is empty")
	}
	return b.nodes[b.ring[0]], nil
}

func (b *AffinityBalancer) Name() string { return "Affinity" }
