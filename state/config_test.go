package state

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCfgYamlRoundTrip(t *testing.T) {
	cfg := LocalCfg{
		Id:         "node1",
		Addr:       MacAddr{0x02, 0, 0, 0, 0, 1},
		Listen:     "127.0.0.1:22180",
		Peers:      []string{"127.0.0.1:22181", "127.0.0.1:22182"},
		LinkMetric: 3,
		Discover:   []MacAddr{{0x02, 0, 0, 0, 0, 2}},
	}
	out, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	var back LocalCfg
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestLocalCfgParsesHandWrittenYaml(t *testing.T) {
	src := `
id: node2
addr: "02:00:00:00:00:05"
listen: 127.0.0.1:22180
peers:
  - 127.0.0.1:22181
discover:
  - "02:00:00:00:00:09"
`
	var cfg LocalCfg
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	assert.Equal(t, "node2", cfg.Id)
	assert.Equal(t, MacAddr{0x02, 0, 0, 0, 0, 0x05}, cfg.Addr)
	require.Len(t, cfg.Discover, 1)
	assert.Equal(t, MacAddr{0x02, 0, 0, 0, 0, 0x09}, cfg.Discover[0])
}
