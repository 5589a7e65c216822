package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdResolver implements Resolver using etcd v3, adapted from the
// teacher's EtcdRegistry (registry/etcd_registry.go). The key scheme
// keeps the same shape — a prefix per named resource, one key per
// address — but under a "minecraft/servers" root instead of
// "mini-rpc", and drops the lease/KeepAlive machinery entirely: a
// client never registers itself, it only reads.
type EtcdResolver struct {
	client *clientv3.Client
}

// NewEtcdResolver creates a resolver connected to the given etcd
// endpoints.
func NewEtcdResolver(endpoints []string) (*EtcdResolver, error) {
	c, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
	if err != nil {
		return nil, err
	}
	return &EtcdResolver{client: c}, nil
}

func keyPrefix(name string) string {
	return "/minecraft/servers/" + name + "/"
}

// Resolve returns every instance registered under the given server
// name, querying etcd with a key prefix exactly as EtcdRegistry.Discover
// does.
func (r *EtcdResolver) Resolve(name string) ([]Instance, error) {
	ctx := context.Background()
	resp, err := r.client.Get(ctx, keyPrefix(name), clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var inst Instance
		if err := json.Unmarshal(kv.Value, &inst); err != nil {
			continue // Skip malformed entries, same as EtcdRegistry.Discover.
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// Watch monitors the server's key prefix and emits the full refreshed
// instance list on every change, using etcd's server-push Watch API —
// the same re-fetch-on-any-event strategy as EtcdRegistry.Watch.
func (r *EtcdResolver) Watch(name string) <-chan []Instance {
	ctx := context.Background()
	ch := make(chan []Instance, 1)
	prefix := keyPrefix(name)

	go func() {
		watchChan := r.client.Watch(ctx, prefix, clientv3.WithPrefix())
		for range watchChan {
			instances, err := r.Resolve(name)
			if err != nil {
				continue
			}
			ch <- instances
		}
	}()

	return ch
}
