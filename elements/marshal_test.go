package elements

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/telamesh/hwmp/state"
)

var (
	addr1 = state.MacAddr{0x02, 0, 0, 0, 0, 1}
	addr2 = state.MacAddr{0x02, 0, 0, 0, 0, 2}
	addr3 = state.MacAddr{0x02, 0, 0, 0, 0, 3}
)

func roundTrip(t *testing.T, e Element) Element {
	t.Helper()
	b, err := Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ParseElements(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 element, got %d", len(out))
	}
	return out[0]
}

func TestPreqRoundTrip(t *testing.T) {
	ext := addr3
	preq := &Preq{
		Flags:                  PreqFlagAddrExt,
		HopCount:               2,
		ElementTTL:             30,
		PathDiscoveryId:        0xdeadbeef,
		OriginatorAddr:         addr1,
		OriginatorSeqno:        1000,
		OriginatorExternalAddr: &ext,
		Lifetime:               5000,
		Metric:                 77,
		Targets: []PreqPerTarget{
			{Flags: TargetFlagTargetOnly, TargetAddr: addr2, TargetSeqno: 500},
			{Flags: TargetFlagUsn, TargetAddr: addr3, TargetSeqno: 0},
		},
	}
	if diff := cmp.Diff(preq, roundTrip(t, preq)); diff != "" {
		t.Errorf("preq round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepRoundTrip(t *testing.T) {
	prep := &Prep{
		HopCount:        1,
		ElementTTL:      31,
		TargetAddr:      addr2,
		TargetSeqno:     501,
		Lifetime:        5000,
		Metric:          12,
		OriginatorAddr:  addr1,
		OriginatorSeqno: 1000,
	}
	if diff := cmp.Diff(prep, roundTrip(t, prep)); diff != "" {
		t.Errorf("prep round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPerrRoundTrip(t *testing.T) {
	ext := addr3
	perr := &Perr{
		ElementTTL: 30,
		Destinations: []PerrDestination{
			{DestAddr: addr1, HwmpSeqno: 9, ReasonCode: ReasonMeshPathErrorDestinationUnreachable},
			{Flags: PerrDestFlagAddrExt, DestAddr: addr2, HwmpSeqno: 0, ExtAddr: &ext,
				ReasonCode: ReasonMeshPathErrorNoForwardingInformation},
		},
	}
	if diff := cmp.Diff(perr, roundTrip(t, perr)); diff != "" {
		t.Errorf("perr round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPreqRejectsTooManyTargets(t *testing.T) {
	preq := &Preq{OriginatorAddr: addr1}
	for i := 0; i <= state.PreqMaxTargets; i++ {
		preq.Targets = append(preq.Targets, PreqPerTarget{TargetAddr: addr2})
	}
	if _, err := DecodePreq(preq.body()); err == nil {
		t.Error("expected target count rejection")
	}
}

func TestPerrRejectsTooManyDestinations(t *testing.T) {
	perr := &Perr{ElementTTL: 1}
	for i := 0; i <= state.PerrMaxDestinations; i++ {
		perr.Destinations = append(perr.Destinations, PerrDestination{DestAddr: addr1})
	}
	if _, err := DecodePerr(perr.body()); err == nil {
		t.Error("expected destination count rejection")
	}
}

func TestPerrTruncatedEntryRejectsWholeElement(t *testing.T) {
	perr := &Perr{
		ElementTTL: 1,
		Destinations: []PerrDestination{
			{DestAddr: addr1, HwmpSeqno: 9, ReasonCode: ReasonMeshPathErrorDestinationUnreachable},
			{DestAddr: addr2, HwmpSeqno: 9, ReasonCode: ReasonMeshPathErrorDestinationUnreachable},
		},
	}
	body := perr.body()
	// chop the second entry mid-way but keep the declared count
	if _, err := DecodePerr(body[:len(body)-3]); err == nil {
		t.Error("expected truncation to reject the whole element, first entry included")
	}
}

func TestParseElementsSkipsUnknownAndBroken(t *testing.T) {
	prep := &Prep{TargetAddr: addr2, OriginatorAddr: addr1, ElementTTL: 1}
	good, err := Marshal(prep)
	if err != nil {
		t.Fatal(err)
	}

	var b []byte
	b = append(b, 0x01, 0x02, 0xaa, 0xbb)                // unknown IE, skipped
	b = append(b, ElementIdPreq, 0x03, 0x00, 0x00, 0x00) // undecodable PREQ, dropped alone
	b = append(b, good...)

	out, err := ParseElements(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected the surviving prep only, got %d elements", len(out))
	}
	if _, ok := out[0].(*Prep); !ok {
		t.Errorf("expected *Prep, got %T", out[0])
	}
}

func TestParseElementsBrokenFramingKeepsPrefix(t *testing.T) {
	prep := &Prep{TargetAddr: addr2, OriginatorAddr: addr1, ElementTTL: 1}
	good, err := Marshal(prep)
	if err != nil {
		t.Fatal(err)
	}
	b := append(good, ElementIdPreq, 0x50) // declares 80 bytes, provides none

	out, err := ParseElements(b)
	if err == nil {
		t.Error("expected framing error")
	}
	if len(out) != 1 {
		t.Errorf("expected decoded prefix to survive, got %d elements", len(out))
	}
}

func TestTimeUnitConversion(t *testing.T) {
	if got := TUToDuration(1); got != 1024*time.Microsecond {
		t.Errorf("TUToDuration(1) = %v", got)
	}
	if got := DurationToTU(5120 * time.Millisecond); got != 5000 {
		t.Errorf("DurationToTU(5.12s) = %d, want 5000", got)
	}
	// saturates instead of wrapping
	if got := DurationToTU(time.Duration(1<<62 - 1)); got != ^uint32(0) {
		t.Errorf("DurationToTU(max) = %d", got)
	}
}
