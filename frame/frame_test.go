package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/state"
)

var (
	tx = state.MacAddr{0x02, 0, 0, 0, 0, 1}
	rx = state.MacAddr{0x02, 0, 0, 0, 0, 2}
)

func TestMeshActionRoundTrip(t *testing.T) {
	ies, err := elements.Marshal(&elements.Prep{
		ElementTTL:     1,
		TargetAddr:     rx,
		OriginatorAddr: tx,
	})
	require.NoError(t, err)

	f, err := BuildMeshAction(tx, rx, ies)
	require.NoError(t, err)

	gotTx, gotRx, gotIes, err := ExtractMeshAction(f)
	require.NoError(t, err)
	require.Equal(t, tx, gotTx)
	require.Equal(t, rx, gotRx)
	require.Equal(t, ies, gotIes)
}

func TestBroadcastReceiverSurvives(t *testing.T) {
	f, err := BuildMeshAction(tx, state.BroadcastAddr, []byte{0x01, 0x00})
	require.NoError(t, err)
	_, gotRx, _, err := ExtractMeshAction(f)
	require.NoError(t, err)
	require.Equal(t, state.BroadcastAddr, gotRx)
}

func TestOversizeFrameRejected(t *testing.T) {
	_, err := BuildMeshAction(tx, rx, make([]byte, state.MaxFrameSize))
	require.Error(t, err)
}

func TestExtractRejectsForeignAction(t *testing.T) {
	f, err := BuildMeshAction(tx, rx, []byte{0x01, 0x00})
	require.NoError(t, err)
	// rewrite the category octet and fix nothing else; the parser must
	// refuse before it ever looks at the IEs
	f[24] = 0x05
	_, _, _, err = ExtractMeshAction(f)
	require.Error(t, err)
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, _, _, err := ExtractMeshAction([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}
