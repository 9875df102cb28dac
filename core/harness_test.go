package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/frame"
	"github.com/telamesh/hwmp/state"
)

// txElement is one element recovered from a queued frame.
type txElement struct {
	Dest state.MacAddr
	Elem elements.Element
}

// decodeQueue drains pq and decodes every queued frame back into its
// elements, verifying the frame round trip on the way.
func decodeQueue(t *testing.T, pq *state.PacketQueue) []txElement {
	t.Helper()
	var out []txElement
	for _, pkt := range pq.Drain() {
		_, recv, ies, err := frame.ExtractMeshAction(pkt.Frame)
		require.NoError(t, err)
		require.Equal(t, pkt.Dest, recv)
		elems, err := elements.ParseElements(ies)
		require.NoError(t, err)
		for _, e := range elems {
			out = append(out, txElement{Dest: pkt.Dest, Elem: e})
		}
	}
	return out
}

func installPath(s *state.State, dest, nextHop state.MacAddr, seqno uint32, metric uint32, ttl time.Duration) {
	sn := seqno
	s.Paths.AddOrUpdatePath(dest, state.MeshPath{
		NextHop:        nextHop,
		HwmpSeqno:      &sn,
		ExpirationTime: s.Hwmp.Timer.Now().Add(ttl),
		Metric:         metric,
		HopCount:       2,
	})
}
