// Package registry resolves a Minecraft server name to one or more
// network addresses via etcd, for fleets of bot clients that look up
// their target server rather than hardcoding host:port.
//
// This is the teacher's registry.Registry (registry/registry.go)
// narrowed to what a client actually needs: a client has nothing to
// register, so Register/Deregister are dropped and only Resolve/Watch
// survive, renamed to match this module's vocabulary (Instance instead
// of ServiceInstance, server names instead of RPC service names).
package registry

// Instance is one running Minecraft server advertised in the registry.
type Instance struct {
	Addr    string // host:port, e.g. "127.0.0.1:25565"
	Weight  int    // relative capacity, used by the weighted balancer
	Version string // protocol/version tag, informational only
}

// Resolver looks up server instances by name.
type Resolver interface {
	// Resolve returns every instance currently advertised under name.
	Resolve(name string) ([]Instance, error)

	// Watch returns a channel emitting the updated instance list whenever
	// the registry entries for name change.
	Watch(name string) <-chan []Instance
}
