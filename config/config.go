// Package config loads, defaults and validates the emufog configuration.
//
// A configuration is read from a TOML or YAML file, chosen by extension.
// Unknown keys are rejected in both formats. Fields missing from the file
// keep the values of New; InitDefaults fills the remaining zero values of
// nested blocks.
//
// # Sample
//
// Sample writes a commented TOML configuration. Tests guarantee that the
// sample parses and matches the defaults.
package config

import (
	"bytes"
	"math"
	"net/netip"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/emufog/emufog-sub000/devices"
	"github.com/emufog/emufog-sub000/graph"
	"github.com/emufog/emufog-sub000/log"
)

// Defaults.
const (
	DefaultBaseAddress         = "10.0.0.0/16"
	DefaultMaxFogNodes         = 100
	DefaultCostThreshold       = 1.0
	DefaultHostDeviceBandwidth = 1000.0
	DefaultSeed                = 1
)

var (
	// ErrInvalid indicates a configuration value outside its domain.
	ErrInvalid = errors.New("config: invalid value")
	// ErrFormat indicates an unsupported file extension.
	ErrFormat = errors.New("config: unsupported format")
)

// Config is the root of the configuration file.
type Config struct {
	// BaseAddress is the prefix synthetic addresses are allocated from.
	BaseAddress string `toml:"base_address" yaml:"base_address"`
	// MaxFogNodes is the number of fog nodes placed across all systems.
	MaxFogNodes int `toml:"max_fog_nodes" yaml:"max_fog_nodes"`
	// CostThreshold is the maximum latency between a device host and the
	// fog node serving it.
	CostThreshold float64 `toml:"cost_threshold" yaml:"cost_threshold"`
	// HostDeviceLatency is the latency of every host-device link.
	HostDeviceLatency float64 `toml:"host_device_latency" yaml:"host_device_latency"`
	// HostDeviceBandwidth is the bandwidth of every host-device link.
	HostDeviceBandwidth float64 `toml:"host_device_bandwidth" yaml:"host_device_bandwidth"`
	// RandomDeviceCount samples device counts from [0, 2·average] instead of
	// using the average.
	RandomDeviceCount bool `toml:"random_device_count" yaml:"random_device_count"`
	// Seed seeds device count sampling.
	Seed uint64 `toml:"seed" yaml:"seed"`

	DeviceTypes []DeviceType `toml:"device_types" yaml:"device_types"`
	FogTypes    []FogType    `toml:"fog_types" yaml:"fog_types"`

	Log log.Config `toml:"log" yaml:"log"`
}

// Container is the container block shared by device and fog types.
type Container struct {
	Name        string  `toml:"name" yaml:"name"`
	Tag         string  `toml:"tag,omitempty" yaml:"tag,omitempty"`
	MemoryLimit int64   `toml:"memory_limit" yaml:"memory_limit"`
	CPUShare    float64 `toml:"cpu_share" yaml:"cpu_share"`
}

// DeviceType is one [[device_types]] entry.
type DeviceType struct {
	Container          `yaml:",inline"`
	ScalingFactor      int     `toml:"scaling_factor" yaml:"scaling_factor"`
	AverageDeviceCount float64 `toml:"average_device_count" yaml:"average_device_count"`
}

// FogType is one [[fog_types]] entry.
type FogType struct {
	ID         int `toml:"id" yaml:"id"`
	Container  `yaml:",inline"`
	MaxClients int     `toml:"max_clients" yaml:"max_clients"`
	Costs      float64 `toml:"costs" yaml:"costs"`
}

// New returns a configuration holding the defaults and no container types.
func New() *Config {
	c := &Config{CostThreshold: DefaultCostThreshold}
	c.InitDefaults()
	return c
}

// InitDefaults sets zero-valued fields to their defaults. Fields where zero
// is meaningful (cost threshold, latency) are only defaulted by New.
func (c *Config) InitDefaults() {
	if c.BaseAddress == "" {
		c.BaseAddress = DefaultBaseAddress
	}
	if c.MaxFogNodes == 0 {
		c.MaxFogNodes = DefaultMaxFogNodes
	}
	if c.HostDeviceBandwidth == 0 {
		c.HostDeviceBandwidth = DefaultHostDeviceBandwidth
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	for i := range c.DeviceTypes {
		if c.DeviceTypes[i].ScalingFactor == 0 {
			c.DeviceTypes[i].ScalingFactor = 1
		}
		if c.DeviceTypes[i].Tag == "" {
			c.DeviceTypes[i].Tag = "latest"
		}
	}
	for i := range c.FogTypes {
		if c.FogTypes[i].Tag == "" {
			c.FogTypes[i].Tag = "latest"
		}
	}
	c.Log.InitDefaults()
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := netip.ParsePrefix(c.BaseAddress); err != nil {
		return errors.Wrapf(ErrInvalid, "base_address %q: %v", c.BaseAddress, err)
	}
	if c.MaxFogNodes < 1 {
		return errors.Wrapf(ErrInvalid, "max_fog_nodes %d < 1", c.MaxFogNodes)
	}
	if err := nonNegative("cost_threshold", c.CostThreshold); err != nil {
		return err
	}
	if err := nonNegative("host_device_latency", c.HostDeviceLatency); err != nil {
		return err
	}
	if err := nonNegative("host_device_bandwidth", c.HostDeviceBandwidth); err != nil {
		return err
	}
	for i, dt := range c.DeviceTypes {
		if err := dt.Validate(); err != nil {
			return errors.WithMessagef(err, "device_types[%d]", i)
		}
	}
	if len(c.FogTypes) == 0 {
		return errors.Wrap(ErrInvalid, "fog_types is empty")
	}
	ids := make(map[int]bool, len(c.FogTypes))
	for i, ft := range c.FogTypes {
		if err := ft.Validate(); err != nil {
			return errors.WithMessagef(err, "fog_types[%d]", i)
		}
		if ids[ft.ID] {
			return errors.Wrapf(ErrInvalid, "fog_types[%d]: duplicate id %d", i, ft.ID)
		}
		ids[ft.ID] = true
	}
	return c.Log.Validate()
}

// Validate checks the container block.
func (c Container) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.Wrap(ErrInvalid, "name is empty")
	}
	if c.MemoryLimit < 0 {
		return errors.Wrapf(ErrInvalid, "memory_limit %d < 0", c.MemoryLimit)
	}
	return nonNegative("cpu_share", c.CPUShare)
}

// Validate checks the device type.
func (d DeviceType) Validate() error {
	if err := d.Container.Validate(); err != nil {
		return err
	}
	if d.ScalingFactor < 1 {
		return errors.Wrapf(ErrInvalid, "scaling_factor %d < 1", d.ScalingFactor)
	}
	if err := nonNegative("average_device_count", d.AverageDeviceCount); err != nil {
		return err
	}
	if d.AverageDeviceCount > devices.MaxAverageDeviceCount {
		return errors.Wrapf(ErrInvalid, "average_device_count %g > %d",
			d.AverageDeviceCount, devices.MaxAverageDeviceCount)
	}
	return nil
}

// Validate checks the fog type.
func (f FogType) Validate() error {
	if err := f.Container.Validate(); err != nil {
		return err
	}
	if f.MaxClients < 1 {
		return errors.Wrapf(ErrInvalid, "max_clients %d < 1", f.MaxClients)
	}
	return nonNegative("costs", f.Costs)
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrInvalid, "%s %g", name, v)
	}
	return nil
}

// Prefix returns the parsed base address. Call after Validate.
func (c *Config) Prefix() netip.Prefix {
	p, _ := netip.ParsePrefix(c.BaseAddress)
	return p
}

func (c Container) toGraph() graph.Container {
	return graph.Container{Name: c.Name, Tag: c.Tag, MemoryLimit: c.MemoryLimit, CPUShare: c.CPUShare}
}

// Devices converts the device types to their graph form.
func (c *Config) Devices() []graph.DeviceType {
	out := make([]graph.DeviceType, len(c.DeviceTypes))
	for i, d := range c.DeviceTypes {
		out[i] = graph.DeviceType{
			Container:          d.Container.toGraph(),
			ScalingFactor:      d.ScalingFactor,
			AverageDeviceCount: d.AverageDeviceCount,
		}
	}
	return out
}

// Fogs converts the fog types to their graph form, keeping their order.
func (c *Config) Fogs() []graph.FogType {
	out := make([]graph.FogType, len(c.FogTypes))
	for i, f := range c.FogTypes {
		out[i] = graph.FogType{
			Container:  f.Container.toGraph(),
			ID:         f.ID,
			MaxClients: f.MaxClients,
			Costs:      f.Costs,
		}
	}
	return out
}

// Decode decodes raw into c in the given format ("toml" or "yaml"),
// rejecting unknown fields.
func Decode(raw []byte, format string, c *Config) error {
	switch format {
	case "toml":
		err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(c)
		return errors.Wrap(err, "decoding toml")
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return errors.Wrap(err, "decoding yaml")
		}
		return nil
	default:
		return errors.Wrapf(ErrFormat, "%q", format)
	}
}

// FormatOf returns the format implied by the extension of file.
func FormatOf(file string) (string, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", errors.Wrapf(ErrFormat, "file %q", file)
	}
}

// LoadFile reads, defaults and validates the configuration in file.
func LoadFile(file string) (*Config, error) {
	format, err := FormatOf(file)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	c := New()
	if err := Decode(raw, format, c); err != nil {
		return nil, errors.WithMessagef(err, "file %q", file)
	}
	c.InitDefaults()
	if err := c.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "file %q", file)
	}
	return c, nil
}
