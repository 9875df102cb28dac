package device

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/telamesh/hwmp/state"
)

// InFrame is one frame lifted off the medium.
type InFrame struct {
	From netip.AddrPort
	Data []byte
}

// UdpDevice emulates a shared wireless medium over UDP. Every send is
// delivered to all configured peers; receiver-side address filtering
// happens above, on the 802.11 header, exactly like on air.
type UdpDevice struct {
	sock   *net.UDPConn
	peers  []netip.AddrPort
	frames chan InFrame
}

func NewUdpDevice(listen string, peers []string) (*UdpDevice, error) {
	lap, err := netip.ParseAddrPort(listen)
	if err != nil {
		return nil, fmt.Errorf("parse listen addr %q: %w", listen, err)
	}
	pap := make([]netip.AddrPort, 0, len(peers))
	for _, p := range peers {
		ap, err := netip.ParseAddrPort(p)
		if err != nil {
			return nil, fmt.Errorf("parse peer addr %q: %w", p, err)
		}
		pap = append(pap, ap)
	}
	sock, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(lap))
	if err != nil {
		return nil, err
	}
	d := &UdpDevice{
		sock:   sock,
		peers:  pap,
		frames: make(chan InFrame, state.DispatchQueueLen),
	}
	go d.readLoop()
	return d, nil
}

func (d *UdpDevice) readLoop() {
	defer close(d.frames)
	for {
		buf := make([]byte, state.MaxFrameSize)
		n, addrport, err := d.sock.ReadFromUDPAddrPort(buf)
		if err != nil {
			return
		}
		d.frames <- InFrame{From: addrport, Data: buf[:n]}
	}
}

// Send puts one frame on the medium.
func (d *UdpDevice) Send(f []byte) error {
	for _, peer := range d.peers {
		if _, err := d.sock.WriteToUDPAddrPort(f, peer); err != nil {
			return fmt.Errorf("send to %s: %w", peer, err)
		}
	}
	return nil
}

// Frames is closed when the device shuts down.
func (d *UdpDevice) Frames() <-chan InFrame {
	return d.frames
}

func (d *UdpDevice) Close() error {
	return d.sock.Close()
}
