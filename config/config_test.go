package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emufog/emufog-sub000/config"
	"github.com/emufog/emufog-sub000/graph"
	"github.com/emufog/emufog-sub000/log"
)

func TestSampleMatchesDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.New().Sample(&buf))

	got := &config.Config{}
	require.NoError(t, config.Decode(buf.Bytes(), "toml", got))
	require.NoError(t, got.Validate())

	want := config.New()
	want.DeviceTypes = []config.DeviceType{{
		Container:          config.Container{Name: "emufog/device", Tag: "latest", MemoryLimit: 128 << 20, CPUShare: 0.5},
		ScalingFactor:      1,
		AverageDeviceCount: 2,
	}}
	want.FogTypes = []config.FogType{
		{ID: 1, Container: config.Container{Name: "emufog/fog", Tag: "latest", MemoryLimit: 512 << 20, CPUShare: 1}, MaxClients: 10, Costs: 10},
		{ID: 2, Container: config.Container{Name: "emufog/fog-large", Tag: "latest", MemoryLimit: 2 << 30, CPUShare: 4}, MaxClients: 50, Costs: 40},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sample (-want +got):\n%s", diff)
	}
}

func TestLoadFileYAML(t *testing.T) {
	c, err := config.LoadFile(filepath.Join("testdata", "emufog.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "192.168.0.0/24", c.Prefix().String())
	assert.Equal(t, 3, c.MaxFogNodes)
	assert.Equal(t, 2.5, c.CostThreshold)
	assert.Equal(t, config.DefaultHostDeviceBandwidth, c.HostDeviceBandwidth, "missing keys keep defaults")
	assert.True(t, c.RandomDeviceCount)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, log.Config{Level: "debug", Format: "console"}, c.Log)

	assert.Equal(t, []graph.DeviceType{{
		Container:          graph.Container{Name: "sensor", Tag: "latest", MemoryLimit: 1 << 20, CPUShare: 0.1},
		ScalingFactor:      1,
		AverageDeviceCount: 3,
	}}, c.Devices())
	assert.Equal(t, []graph.FogType{{
		Container:  graph.Container{Name: "edge-box", Tag: "v2", MemoryLimit: 256 << 20, CPUShare: 1},
		ID:         7,
		MaxClients: 4,
		Costs:      2,
	}}, c.Fogs())
}

func TestLoadFileRejects(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}
	const fog = "\n[[fog_types]]\nid = 1\nname = \"f\"\nmax_clients = 1\ncosts = 1.0\n"

	tests := map[string]struct {
		file string
		want error
	}{
		"unknown toml key":  {write("a.toml", "bogus = 1"+fog), nil},
		"unknown yaml key":  {write("b.yaml", "bogus: 1\n"), nil},
		"extension":         {write("c.json", "{}"), config.ErrFormat},
		"no fog types":      {write("d.toml", "max_fog_nodes = 2\n"), config.ErrInvalid},
		"bad prefix":        {write("e.toml", "base_address = \"10.0.0.0\"\n"+fog), config.ErrInvalid},
		"negative latency":  {write("f.toml", "host_device_latency = -1.0\n"+fog), config.ErrInvalid},
		"zero clients":      {write("g.toml", "[[fog_types]]\nid = 1\nname = \"f\"\nmax_clients = 0\n"), config.ErrInvalid},
		"duplicate fog ids": {write("h.toml", fog+fog), config.ErrInvalid},
		"bad scaling":       {write("i.toml", "[[device_types]]\nname = \"d\"\nscaling_factor = -2\n"+fog), config.ErrInvalid},
		"huge average":      {write("j.toml", "[[device_types]]\nname = \"d\"\naverage_device_count = 1e9\n"+fog), config.ErrInvalid},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadFile(tc.file)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	for file, want := range map[string]string{"a.toml": "toml", "b.YAML": "yaml", "c.yml": "yaml"} {
		got, err := config.FormatOf(file)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
