package elements

import (
	"encoding/binary"
	"fmt"

	"github.com/telamesh/hwmp/state"
)

// All multi-byte fields are little-endian, per 9.2.2.

var le = binary.LittleEndian

type reader struct {
	b []byte
}

func (r *reader) remaining() int { return len(r.b) }

func (r *reader) u8() (uint8, error) {
	if len(r.b) < 1 {
		return 0, errTruncated
	}
	v := r.b[0]
	r.b = r.b[1:]
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if len(r.b) < 2 {
		return 0, errTruncated
	}
	v := le.Uint16(r.b)
	r.b = r.b[2:]
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if len(r.b) < 4 {
		return 0, errTruncated
	}
	v := le.Uint32(r.b)
	r.b = r.b[4:]
	return v, nil
}

func (r *reader) addr() (state.MacAddr, error) {
	var a state.MacAddr
	if len(r.b) < 6 {
		return a, errTruncated
	}
	copy(a[:], r.b)
	r.b = r.b[6:]
	return a, nil
}

var errTruncated = fmt.Errorf("element truncated")

// DecodePreq decodes a PREQ element body (without the id/length octets).
func DecodePreq(body []byte) (*Preq, error) {
	r := &reader{body}
	var p Preq
	var err error
	if p.Flags, err = r.u8(); err != nil {
		return nil, err
	}
	if p.HopCount, err = r.u8(); err != nil {
		return nil, err
	}
	if p.ElementTTL, err = r.u8(); err != nil {
		return nil, err
	}
	if p.PathDiscoveryId, err = r.u32(); err != nil {
		return nil, err
	}
	if p.OriginatorAddr, err = r.addr(); err != nil {
		return nil, err
	}
	if p.OriginatorSeqno, err = r.u32(); err != nil {
		return nil, err
	}
	if p.Flags&PreqFlagAddrExt != 0 {
		ext, err := r.addr()
		if err != nil {
			return nil, err
		}
		p.OriginatorExternalAddr = &ext
	}
	if p.Lifetime, err = r.u32(); err != nil {
		return nil, err
	}
	if p.Metric, err = r.u32(); err != nil {
		return nil, err
	}
	count, err := r.u8()
	if err != nil {
		return nil, err
	}
	if int(count) > state.PreqMaxTargets {
		return nil, fmt.Errorf("preq declares %d targets, max %d", count, state.PreqMaxTargets)
	}
	p.Targets = make([]PreqPerTarget, 0, count)
	for i := 0; i < int(count); i++ {
		var t PreqPerTarget
		if t.Flags, err = r.u8(); err != nil {
			return nil, err
		}
		if t.TargetAddr, err = r.addr(); err != nil {
			return nil, err
		}
		if t.TargetSeqno, err = r.u32(); err != nil {
			return nil, err
		}
		p.Targets = append(p.Targets, t)
	}
	return &p, nil
}

// DecodePrep decodes a PREP element body.
func DecodePrep(body []byte) (*Prep, error) {
	r := &reader{body}
	var p Prep
	var err error
	if p.Flags, err = r.u8(); err != nil {
		return nil, err
	}
	if p.HopCount, err = r.u8(); err != nil {
		return nil, err
	}
	if p.ElementTTL, err = r.u8(); err != nil {
		return nil, err
	}
	if p.TargetAddr, err = r.addr(); err != nil {
		return nil, err
	}
	if p.TargetSeqno, err = r.u32(); err != nil {
		return nil, err
	}
	if p.Flags&PrepFlagAddrExt != 0 {
		ext, err := r.addr()
		if err != nil {
			return nil, err
		}
		p.TargetExternalAddr = &ext
	}
	if p.Lifetime, err = r.u32(); err != nil {
		return nil, err
	}
	if p.Metric, err = r.u32(); err != nil {
		return nil, err
	}
	if p.OriginatorAddr, err = r.addr(); err != nil {
		return nil, err
	}
	if p.OriginatorSeqno, err = r.u32(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodePerr decodes a PERR element body. A destination count over
// PerrMaxDestinations rejects the whole element, as does running out of
// data mid-entry.
func DecodePerr(body []byte) (*Perr, error) {
	r := &reader{body}
	var p Perr
	var err error
	if p.ElementTTL, err = r.u8(); err != nil {
		return nil, err
	}
	count, err := r.u8()
	if err != nil {
		return nil, err
	}
	if int(count) > state.PerrMaxDestinations {
		return nil, fmt.Errorf("perr declares %d destinations, max %d", count, state.PerrMaxDestinations)
	}
	p.Destinations = make([]PerrDestination, 0, count)
	for i := 0; i < int(count); i++ {
		var d PerrDestination
		if d.Flags, err = r.u8(); err != nil {
			return nil, err
		}
		if d.DestAddr, err = r.addr(); err != nil {
			return nil, err
		}
		if d.HwmpSeqno, err = r.u32(); err != nil {
			return nil, err
		}
		if d.Flags&PerrDestFlagAddrExt != 0 {
			ext, err := r.addr()
			if err != nil {
				return nil, err
			}
			d.ExtAddr = &ext
		}
		if d.ReasonCode, err = r.u16(); err != nil {
			return nil, err
		}
		p.Destinations = append(p.Destinations, d)
	}
	return &p, nil
}

func (p *Preq) body() []byte {
	b := make([]byte, 0, 26+len(p.Targets)*11)
	b = append(b, p.Flags, p.HopCount, p.ElementTTL)
	b = le.AppendUint32(b, p.PathDiscoveryId)
	b = append(b, p.OriginatorAddr[:]...)
	b = le.AppendUint32(b, p.OriginatorSeqno)
	if p.OriginatorExternalAddr != nil {
		b = append(b, p.OriginatorExternalAddr[:]...)
	}
	b = le.AppendUint32(b, p.Lifetime)
	b = le.AppendUint32(b, p.Metric)
	b = append(b, uint8(len(p.Targets)))
	for i := range p.Targets {
		t := &p.Targets[i]
		b = append(b, t.Flags)
		b = append(b, t.TargetAddr[:]...)
		b = le.AppendUint32(b, t.TargetSeqno)
	}
	return b
}

func (p *Prep) body() []byte {
	b := make([]byte, 0, 37)
	b = append(b, p.Flags, p.HopCount, p.ElementTTL)
	b = append(b, p.TargetAddr[:]...)
	b = le.AppendUint32(b, p.TargetSeqno)
	if p.TargetExternalAddr != nil {
		b = append(b, p.TargetExternalAddr[:]...)
	}
	b = le.AppendUint32(b, p.Lifetime)
	b = le.AppendUint32(b, p.Metric)
	b = append(b, p.OriginatorAddr[:]...)
	b = le.AppendUint32(b, p.OriginatorSeqno)
	return b
}

func (p *Perr) body() []byte {
	b := make([]byte, 0, 2+len(p.Destinations)*19)
	b = append(b, p.ElementTTL, uint8(len(p.Destinations)))
	for i := range p.Destinations {
		d := &p.Destinations[i]
		b = append(b, d.Flags)
		b = append(b, d.DestAddr[:]...)
		b = le.AppendUint32(b, d.HwmpSeqno)
		if d.ExtAddr != nil {
			b = append(b, d.ExtAddr[:]...)
		}
		b = le.AppendUint16(b, d.ReasonCode)
	}
	return b
}

func appendElement(b []byte, id uint8, body []byte) ([]byte, error) {
	if len(body) > 255 {
		return nil, fmt.Errorf("element %d body is %d bytes, max 255", id, len(body))
	}
	b = append(b, id, uint8(len(body)))
	return append(b, body...), nil
}

// Marshal encodes the element with its id and length octets.
func Marshal(e Element) ([]byte, error) {
	switch v := e.(type) {
	case *Preq:
		return appendElement(nil, ElementIdPreq, v.body())
	case *Prep:
		return appendElement(nil, ElementIdPrep, v.body())
	case *Perr:
		return appendElement(nil, ElementIdPerr, v.body())
	default:
		return nil, fmt.Errorf("unknown element type %T", e)
	}
}

// ParseElements walks the information elements of a mesh path selection
// action body. IEs of unknown ids are skipped; an undecodable HWMP IE is
// dropped without affecting its siblings; broken IE framing rejects the
// rest of the body.
func ParseElements(b []byte) ([]Element, error) {
	out := make([]Element, 0, 1)
	for len(b) > 0 {
		if len(b) < 2 {
			return out, errTruncated
		}
		id, length := b[0], int(b[1])
		if len(b) < 2+length {
			return out, errTruncated
		}
		body := b[2 : 2+length]
		b = b[2+length:]

		var e Element
		var err error
		switch id {
		case ElementIdPreq:
			e, err = DecodePreq(body)
		case ElementIdPrep:
			e, err = DecodePrep(body)
		case ElementIdPerr:
			e, err = DecodePerr(body)
		default:
			continue
		}
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
