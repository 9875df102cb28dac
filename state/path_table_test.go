package state

import (
	"testing"
	"time"
)

func TestPathTableCrud(t *testing.T) {
	tbl := NewPathTable()
	a := MacAddr{0x02, 0, 0, 0, 0, 1}
	b := MacAddr{0x02, 0, 0, 0, 0, 2}

	if got := tbl.GetPath(a); got != nil {
		t.Errorf("expected nil for unknown path, got %+v", got)
	}

	seqno := uint32(7)
	p := tbl.AddOrUpdatePath(a, MeshPath{NextHop: b, HwmpSeqno: &seqno, Metric: 3, HopCount: 1})
	if got := tbl.GetPath(a); got != p {
		t.Errorf("expected stored pointer %p, got %p", p, got)
	}
	if tbl.Len() != 1 {
		t.Errorf("expected len 1, got %d", tbl.Len())
	}

	tbl.AddOrUpdatePath(a, MeshPath{NextHop: b, Metric: 9, HopCount: 2})
	if got := tbl.GetPath(a); got.Metric != 9 || got.HwmpSeqno != nil {
		t.Errorf("overwrite did not replace the entry: %+v", got)
	}

	tbl.RemovePath(a)
	tbl.RemovePath(a) // idempotent
	if tbl.Len() != 0 {
		t.Errorf("expected empty table, got len %d", tbl.Len())
	}
}

func TestPathTableStoresCopy(t *testing.T) {
	tbl := NewPathTable()
	a := MacAddr{0x02, 0, 0, 0, 0, 1}

	src := MeshPath{Metric: 3, ExpirationTime: time.Now()}
	tbl.AddOrUpdatePath(a, src)
	src.Metric = 100
	if got := tbl.GetPath(a); got.Metric != 3 {
		t.Errorf("caller mutation leaked into the table: %+v", got)
	}
}

func TestPathTableRange(t *testing.T) {
	tbl := NewPathTable()
	a := MacAddr{0x02, 0, 0, 0, 0, 1}
	b := MacAddr{0x02, 0, 0, 0, 0, 2}
	tbl.AddOrUpdatePath(a, MeshPath{Metric: 1})
	tbl.AddOrUpdatePath(b, MeshPath{Metric: 2})

	seen := map[MacAddr]uint32{}
	tbl.Range(func(dest MacAddr, path *MeshPath) bool {
		seen[dest] = path.Metric
		return true
	})
	if len(seen) != 2 || seen[a] != 1 || seen[b] != 2 {
		t.Errorf("range visited %+v", seen)
	}

	count := 0
	tbl.Range(func(MacAddr, *MeshPath) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("range ignored early stop, visited %d", count)
	}
}
