// Package elements implements the HWMP path selection elements of
// IEEE 802.11-2016, 9.4.2.114 (PREQ), 9.4.2.115 (PREP) and
// 9.4.2.116 (PERR).
package elements

import (
	"time"

	"github.com/telamesh/hwmp/state"
)

const (
	ElementIdPreq = 130
	ElementIdPrep = 131
	ElementIdPerr = 132

	// CategoryMesh and ActionHwmp identify a HWMP Mesh Path Selection
	// action frame body.
	CategoryMesh = 13
	ActionHwmp   = 1
)

// element flags
const (
	PreqFlagAddrExt = 1 << 6
	PrepFlagAddrExt = 1 << 6

	TargetFlagTargetOnly = 1 << 0
	TargetFlagUsn        = 1 << 2

	PerrDestFlagAddrExt = 1 << 6
)

// reason codes carried by PERR destinations
const (
	ReasonMeshPathErrorNoForwardingInformation uint16 = 62
	ReasonMeshPathErrorDestinationUnreachable  uint16 = 63
)

// Element is one decoded HWMP information element.
type Element interface {
	elementId() uint8
}

type PreqPerTarget struct {
	Flags       uint8
	TargetAddr  state.MacAddr
	TargetSeqno uint32
}

func (t *PreqPerTarget) TargetOnly() bool { return t.Flags&TargetFlagTargetOnly != 0 }
func (t *PreqPerTarget) Usn() bool        { return t.Flags&TargetFlagUsn != 0 }

type Preq struct {
	Flags           uint8
	HopCount        uint8
	ElementTTL      uint8
	PathDiscoveryId uint32
	OriginatorAddr  state.MacAddr
	OriginatorSeqno uint32
	// OriginatorExternalAddr is present iff the AE flag is set.
	OriginatorExternalAddr *state.MacAddr
	Lifetime               uint32 // TU
	Metric                 uint32
	Targets                []PreqPerTarget
}

type Prep struct {
	Flags       uint8
	HopCount    uint8
	ElementTTL  uint8
	TargetAddr  state.MacAddr
	TargetSeqno uint32
	// TargetExternalAddr is present iff the AE flag is set.
	TargetExternalAddr *state.MacAddr
	Lifetime           uint32 // TU
	Metric             uint32
	OriginatorAddr     state.MacAddr
	OriginatorSeqno    uint32
}

type PerrDestination struct {
	Flags     uint8
	DestAddr  state.MacAddr
	HwmpSeqno uint32
	// ExtAddr is present iff the AE flag is set; such an entry refers to
	// an external address proxied by DestAddr.
	ExtAddr    *state.MacAddr
	ReasonCode uint16
}

type Perr struct {
	ElementTTL   uint8
	Destinations []PerrDestination
}

func (*Preq) elementId() uint8 { return ElementIdPreq }
func (*Prep) elementId() uint8 { return ElementIdPrep }
func (*Perr) elementId() uint8 { return ElementIdPerr }

// tu is the 802.11 time unit.
const tu = 1024 * time.Microsecond

func DurationToTU(d time.Duration) uint32 {
	t := d / tu
	if t > time.Duration(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(t)
}

func TUToDuration(t uint32) time.Duration {
	return time.Duration(t) * tu
}
