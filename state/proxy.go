package state

import (
	"github.com/jellydator/ttlcache/v3"
)

// ProxyTable remembers which mesh station proxies an external (non-mesh)
// address. PERR entries carrying an address extension only ever touch
// this table, never direct forwarding info. Entries expire on their own;
// hits do not refresh them.
type ProxyTable struct {
	cache *ttlcache.Cache[uint64, MacAddr]
}

func NewProxyTable() *ProxyTable {
	c := ttlcache.New[uint64, MacAddr](
		ttlcache.WithTTL[uint64, MacAddr](ProxyInfoLifetime),
		ttlcache.WithDisableTouchOnHit[uint64, MacAddr](),
	)
	go c.Start()
	return &ProxyTable{cache: c}
}

// Put records that external is reachable through proxy.
func (p *ProxyTable) Put(external, proxy MacAddr) {
	p.cache.Set(external.Key(), proxy, ttlcache.DefaultTTL)
}

func (p *ProxyTable) Get(external MacAddr) (MacAddr, bool) {
	item := p.cache.Get(external.Key())
	if item == nil {
		return MacAddr{}, false
	}
	return item.Value(), true
}

func (p *ProxyTable) Remove(external MacAddr) {
	p.cache.Delete(external.Key())
}

func (p *ProxyTable) Stop() {
	p.cache.Stop()
}
