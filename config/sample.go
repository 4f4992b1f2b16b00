package config

import (
	"bytes"
	"fmt"
	"io"
)

const rootSample = `# Prefix synthetic node addresses are allocated from. (default %s)
base_address = "%s"

# Maximum number of fog nodes placed across all autonomous systems. (default %d)
max_fog_nodes = %d

# Maximum latency sum between a device host and the fog node serving it.
# (default %g)
cost_threshold = %.1f

# Latency and bandwidth of the link between a device and its host.
host_device_latency = 0.0
host_device_bandwidth = %.1f

# Sample the number of devices per host from [0, 2*average] instead of using
# the rounded average. (default false)
random_device_count = false

# Seed for device count sampling. (default %d)
seed = %d

# Device containers attached to every edge node.
[[device_types]]
name = "emufog/device"
tag = "latest"
memory_limit = 134217728
cpu_share = 0.5
# Number of end users one device represents.
scaling_factor = 1
average_device_count = 2.0

# Fog containers in preference order. Among equally cheap types the first
# one is chosen.
[[fog_types]]
id = 1
name = "emufog/fog"
tag = "latest"
memory_limit = 536870912
cpu_share = 1.0
# Number of devices one container can serve.
max_clients = 10
costs = 10.0

[[fog_types]]
id = 2
name = "emufog/fog-large"
tag = "latest"
memory_limit = 2147483648
cpu_share = 4.0
max_clients = 50
costs = 40.0
`

// Sample writes a commented TOML configuration holding the defaults and one
// example of each container type to dst.
func (c *Config) Sample(dst io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, rootSample,
		DefaultBaseAddress, DefaultBaseAddress,
		DefaultMaxFogNodes, DefaultMaxFogNodes,
		DefaultCostThreshold, DefaultCostThreshold,
		DefaultHostDeviceBandwidth,
		DefaultSeed, DefaultSeed)
	fmt.Fprintf(&buf, "\n[%s]\n", c.Log.ConfigName())
	c.Log.Sample(&buf)
	_, err := io.Copy(dst, &buf)
	return err
}
