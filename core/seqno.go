package core

// HWMP sequence numbers live on a mod 2^32 ring. a is considered older
// than b iff the forward distance from a to b is nonzero and less than
// half the ring; ties and the exact antipodal distance compare as "not
// less" in both directions.

func HwmpSeqnoLt(a, b uint32) bool {
	x := b - a
	return x != 0 && x < 1<<31
}

func MaxHwmpSeqno(a, b uint32) uint32 {
	if HwmpSeqnoLt(a, b) {
		return b
	}
	return a
}
