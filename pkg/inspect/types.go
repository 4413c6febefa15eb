package inspect

// Container is the subset of a container inspection record needed to rebuild
// its run command. It's decoded from the generic document by mapstructure, so
// the tags follow the inspection payload's key casing.
type Container struct {
	ID              string          `mapstructure:"Id"`
	Name            string          `mapstructure:"Name" validate:"required"`
	Config          Config          `mapstructure:"Config"`
	HostConfig      HostConfig      `mapstructure:"HostConfig"`
	NetworkSettings NetworkSettings `mapstructure:"NetworkSettings"`
}

// Config holds the creation-time settings of the container.
type Config struct {
	Image        string   `mapstructure:"Image" validate:"required"`
	Env          []string `mapstructure:"Env"`
	Cmd          []string `mapstructure:"Cmd"`
	AttachStdout bool     `mapstructure:"AttachStdout"`
	Tty          bool     `mapstructure:"Tty"`
}

// HostConfig holds the host-side settings of the container.
type HostConfig struct {
	Binds       []string `mapstructure:"Binds"`
	VolumesFrom []string `mapstructure:"VolumesFrom"`
	Links       []string `mapstructure:"Links"`
}

// NetworkSettings maps "<port>/<proto>" keys to their host bindings. A nil
// binding list means the port is exposed but not published.
type NetworkSettings struct {
	Ports map[string][]PortBinding `mapstructure:"Ports"`
}

// PortBinding is a single host address a container port is published on.
type PortBinding struct {
	HostIP   string `mapstructure:"HostIp"`
	HostPort string `mapstructure:"HostPort"`
}
