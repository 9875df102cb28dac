package state

import "time"

var (
	// InitialElementTTL is the hop budget placed on locally originated
	// PREQ/PREP/PERR elements.
	InitialElementTTL = uint8(32)

	// MaxFrameSize bounds constructed management frames, including the
	// MAC header and FCS.
	MaxFrameSize = 2304

	// ActivePathTimeout is the lifetime advertised for freshly learned
	// forwarding info (dot11MeshHWMPactivePathTimeout, 5000 TU).
	ActivePathTimeout = 5120 * time.Millisecond

	// MaxPreqRetries is the total number of PREQs originated for a single
	// path discovery before the search is abandoned.
	MaxPreqRetries = 3

	// MinPreqInterval is the retry spacing between PREQs of the same
	// discovery (dot11MeshHWMPpreqMinInterval, 100 TU).
	MinPreqInterval = 102 * time.Millisecond

	// MinPerrInterval paces PERR origination and forwarding
	// (dot11MeshHWMPperrMinInterval, 100 TU). Incoming PERR processing is
	// never rate limited.
	MinPerrInterval = 102 * time.Millisecond

	// PerrBurstSize is the number of back-to-back PERRs permitted before
	// MinPerrInterval pacing kicks in.
	PerrBurstSize = 1

	// PreqMaxTargets caps the targets staged onto a single forwarded PREQ.
	// Staging saturates at the cap, it does not fail.
	PreqMaxTargets = 20

	// PerrMaxDestinations caps the destination list of a single PERR. A
	// received PERR declaring more destinations is rejected whole.
	PerrMaxDestinations = 19

	// TargetOnlyDefault is the Target Only flag placed on locally
	// originated PREQs (dot11MeshHWMPtargetOnly).
	TargetOnlyDefault = true

	// ProxyInfoLifetime bounds how long a proxy binding learned for an
	// external address stays usable without a refresh.
	ProxyInfoLifetime = 30 * time.Second

	DispatchQueueLen = 128
)

// debug toggles, set from the CLI
var (
	DBG_log_paths        = false
	DBG_log_path_changes = false
	DBG_log_elements     = false
	DBG_debug            = false
)
