package state

// OutPacket is a constructed management frame ready for transmission.
type OutPacket struct {
	// Dest is the receiver address already written into the frame header,
	// repeated here so the MAC layer does not have to re-parse it.
	Dest  MacAddr
	Frame []byte
}

// PacketQueue collects the outbound packets produced by a single
// handler invocation. Ownership of drained packets passes to the
// caller; the queue is not persisted between invocations.
type PacketQueue struct {
	pkts []OutPacket
}

func (q *PacketQueue) Enqueue(p OutPacket) {
	q.pkts = append(q.pkts, p)
}

func (q *PacketQueue) Len() int {
	return len(q.pkts)
}

// Packets returns the queued packets without draining them.
func (q *PacketQueue) Packets() []OutPacket {
	return q.pkts
}

// Drain empties the queue and returns everything queued so far.
func (q *PacketQueue) Drain() []OutPacket {
	out := q.pkts
	q.pkts = nil
	return out
}
