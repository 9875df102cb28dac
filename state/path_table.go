package state

import "time"

// MeshPath is the forwarding info kept for one reachable station.
type MeshPath struct {
	// NextHop is the neighbour frames for this station are relayed through.
	NextHop MacAddr
	// HwmpSeqno is the freshest sequence number learned for the station,
	// or nil if the path was never learned with one (USN semantics). A
	// seqno-less path is usable but loses every freshness comparison.
	HwmpSeqno *uint32
	// ExpirationTime is advanced, never regressed, on refresh. The table
	// does not sweep expired entries; consumers check it themselves.
	ExpirationTime time.Time
	// Metric is the cumulative link cost along the path. Lower is better.
	Metric uint32
	// HopCount is the number of hops to the station.
	HopCount uint8
}

// PathTable maps station addresses to mesh paths. It is owned by the
// state goroutine and carries no locking.
type PathTable struct {
	paths map[uint64]*MeshPath
}

func NewPathTable() *PathTable {
	return &PathTable{paths: make(map[uint64]*MeshPath)}
}

// GetPath returns the stored path, or nil if none is known. The pointer
// stays valid until the next mutation of the same address.
func (t *PathTable) GetPath(addr MacAddr) *MeshPath {
	return t.paths[addr.Key()]
}

// AddOrUpdatePath inserts or overwrites the path for addr and returns
// the stored entry.
func (t *PathTable) AddOrUpdatePath(addr MacAddr, path MeshPath) *MeshPath {
	p := path
	t.paths[addr.Key()] = &p
	return &p
}

// RemovePath deletes the entry for addr if present.
func (t *PathTable) RemovePath(addr MacAddr) {
	delete(t.paths, addr.Key())
}

func (t *PathTable) Len() int {
	return len(t.paths)
}

// Range calls f for every stored path until f returns false.
func (t *PathTable) Range(f func(dest MacAddr, path *MeshPath) bool) {
	for k, p := range t.paths {
		if !f(macAddrFromKey(k), p) {
			return
		}
	}
}
