package state

import (
	"fmt"
	"net/netip"
	"regexp"
)

// LocalCfg represents local node-level configuration
type LocalCfg struct {
	Id   string  // unique id for this node, used as the log prefix
	Addr MacAddr // the station address of this mesh interface
	// Listen is the UDP endpoint of the lab transport that stands in for
	// the WLAN driver (see the device package).
	Listen string `yaml:",omitempty"`
	// Peers are the lab transport endpoints that share the simulated medium.
	Peers []string `yaml:",omitempty"`
	// LinkMetric is the fixed per-hop airtime metric reported for frames
	// arriving over the lab transport. Real drivers report this per frame.
	LinkMetric uint32 `yaml:"link_metric,omitempty"`
	// Discover lists stations whose paths are resolved at startup.
	Discover []MacAddr `yaml:",omitempty"`
	LogPath  string    `yaml:"log_path,omitempty"` // if not empty, hwmpd will also write to this file
}

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,24}$`)

func NameValidator(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("node id must match %s", nameRegex.String())
	}
	return nil
}

func NodeConfigValidator(cfg *LocalCfg) error {
	if err := NameValidator(cfg.Id); err != nil {
		return err
	}
	if cfg.Addr == (MacAddr{}) {
		return fmt.Errorf("node %s: addr must be set", cfg.Id)
	}
	if cfg.Addr.IsGroup() {
		return fmt.Errorf("node %s: addr %s is a group address", cfg.Id, cfg.Addr)
	}
	if cfg.Listen != "" {
		if _, err := netip.ParseAddrPort(cfg.Listen); err != nil {
			return fmt.Errorf("node %s: listen: %w", cfg.Id, err)
		}
	}
	for _, p := range cfg.Peers {
		if _, err := netip.ParseAddrPort(p); err != nil {
			return fmt.Errorf("node %s: peer %q: %w", cfg.Id, p, err)
		}
	}
	if cfg.LinkMetric == 0 {
		cfg.LinkMetric = 1
	}
	return nil
}
