// Package frame builds and parses the 802.11 management action frames
// that carry HWMP elements between mesh stations.
package frame

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/telamesh/hwmp/elements"
	"github.com/telamesh/hwmp/state"
)

const mgmtHeaderLen = 24

// frame control for a management action frame: protocol 0, type 00,
// subtype 1101.
const fcActionByte = 0xd0

// BuildMeshAction constructs a complete mesh path selection action frame
// carrying ies, addressed to receiver. The FCS is included; drivers that
// compute it in hardware strip it before handoff.
func BuildMeshAction(transmitter, receiver state.MacAddr, ies []byte) ([]byte, error) {
	total := mgmtHeaderLen + 2 + len(ies) + 4
	if total > state.MaxFrameSize {
		return nil, fmt.Errorf("action frame is %d bytes, max %d", total, state.MaxFrameSize)
	}
	f := make([]byte, 0, total)
	f = append(f, fcActionByte, 0x00) // frame control
	f = append(f, 0x00, 0x00)         // duration
	f = append(f, receiver[:]...)     // address 1
	f = append(f, transmitter[:]...)  // address 2
	f = append(f, transmitter[:]...)  // address 3
	f = append(f, 0x00, 0x00)         // sequence control
	f = append(f, elements.CategoryMesh, elements.ActionHwmp)
	f = append(f, ies...)
	f = binary.LittleEndian.AppendUint32(f, crc32.ChecksumIEEE(f))
	return f, nil
}

// ExtractMeshAction parses a received management frame and returns the
// transmitter address, the receiver address and the element bytes of its
// mesh path selection action body.
func ExtractMeshAction(f []byte) (transmitter, receiver state.MacAddr, ies []byte, err error) {
	pkt := gopacket.NewPacket(f, layers.LayerTypeDot11, gopacket.NoCopy)
	dl := pkt.Layer(layers.LayerTypeDot11)
	if dl == nil {
		return transmitter, receiver, nil, fmt.Errorf("not an 802.11 frame")
	}
	dot11 := dl.(*layers.Dot11)
	if dot11.Type != layers.Dot11TypeMgmtAction {
		return transmitter, receiver, nil, fmt.Errorf("not an action frame: %v", dot11.Type)
	}
	if !dot11.ChecksumValid() {
		return transmitter, receiver, nil, fmt.Errorf("bad fcs")
	}
	if len(dot11.Address2) != 6 || len(dot11.Address1) != 6 {
		return transmitter, receiver, nil, fmt.Errorf("malformed addresses")
	}
	copy(receiver[:], dot11.Address1)
	copy(transmitter[:], dot11.Address2)

	al := pkt.Layer(layers.LayerTypeDot11MgmtAction)
	if al == nil {
		return transmitter, receiver, nil, fmt.Errorf("empty action body")
	}
	body := al.LayerContents()
	if len(body) < 2 || body[0] != elements.CategoryMesh || body[1] != elements.ActionHwmp {
		return transmitter, receiver, nil, fmt.Errorf("not a mesh path selection action")
	}
	return transmitter, receiver, body[2:], nil
}
