package state

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
)

// MacAddr is an IEEE 802 station address.
type MacAddr [6]byte

var BroadcastAddr = MacAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

func ParseMacAddr(s string) (MacAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MacAddr{}, err
	}
	if len(hw) != 6 {
		return MacAddr{}, fmt.Errorf("expected a 48-bit address, got %q", s)
	}
	var a MacAddr
	copy(a[:], hw)
	return a, nil
}

// RandomMacAddr draws a locally administered unicast address.
func RandomMacAddr() (MacAddr, error) {
	var a MacAddr
	if _, err := rand.Read(a[:]); err != nil {
		return MacAddr{}, err
	}
	a[0] = (a[0] | 0x02) &^ 0x01
	return a, nil
}

func (a MacAddr) String() string {
	return net.HardwareAddr(a[:]).String()
}

// Key packs the address into the integer form used to index path and
// discovery tables.
func (a MacAddr) Key() uint64 {
	var buf [8]byte
	copy(buf[2:], a[:])
	return binary.BigEndian.Uint64(buf[:])
}

func macAddrFromKey(k uint64) MacAddr {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], k)
	var a MacAddr
	copy(a[:], buf[2:])
	return a
}

func (a MacAddr) IsGroup() bool {
	return a[0]&0x01 != 0
}

func (a MacAddr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *MacAddr) UnmarshalText(text []byte) error {
	parsed, err := ParseMacAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
