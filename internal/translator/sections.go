package translator

import (
	"fmt"
	"strings"

	"github.com/docker/go-connections/nat"

	"runlike/pkg/inspect"
)

func nameOptions(c *inspect.Container, opts Options) []string {
	if opts.NoName {
		return nil
	}
	return []string{"--name=" + localName(c.Name)}
}

func extraOptions(_ *inspect.Container, opts Options) []string {
	if len(opts.ExtraOptions) == 0 {
		return nil
	}
	return append([]string(nil), opts.ExtraOptions...)
}

// envOptions splits on the first "=" only; values may contain more.
func envOptions(c *inspect.Container, _ Options) []string {
	var out []string
	for _, entry := range c.Config.Env {
		key, value, _ := strings.Cut(entry, "=")
		out = append(out, fmt.Sprintf(`-e %s="%s"`, key, value))
	}
	return out
}

func volumeOptions(c *inspect.Container, _ Options) []string {
	return multiOption("volume", c.HostConfig.Binds)
}

func volumesFromOptions(c *inspect.Container, _ Options) []string {
	return multiOption("volumes-from", c.HostConfig.VolumesFrom)
}

func multiOption(option string, values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, fmt.Sprintf(`--%s="%s"`, option, v))
	}
	return out
}

// portOptions emits one token per port key, in ascending port/protocol
// order. Only the first binding of each key is considered.
func portOptions(c *inspect.Container, _ Options) []string {
	ports := c.NetworkSettings.Ports
	if len(ports) == 0 {
		return nil
	}

	keys := make([]nat.Port, 0, len(ports))
	for k := range ports {
		keys = append(keys, nat.Port(k))
	}
	nat.Sort(keys, portLess)

	out := make([]string, 0, len(keys))
	for _, port := range keys {
		bindings := ports[string(port)]
		if len(bindings) == 0 {
			out = append(out, "--expose="+string(port))
			continue
		}

		binding := bindings[0]
		switch {
		case binding.HostPort == "":
			out = append(out, "-P")
		case binding.HostIP != "":
			out = append(out, fmt.Sprintf("-p %s:%s:%s", binding.HostIP, binding.HostPort, port))
		default:
			out = append(out, fmt.Sprintf("-p %s:%s", binding.HostPort, port))
		}
	}
	return out
}

func portLess(a, b nat.Port) bool {
	if a.Int() != b.Int() {
		return a.Int() < b.Int()
	}
	if a.Proto() != b.Proto() {
		return a.Proto() < b.Proto()
	}
	return a < b
}

// linkOptions renders "<source>:<alias-path>" entries as --link source:alias,
// where alias is the last element of the alias path. Duplicates are dropped,
// keeping the first occurrence.
func linkOptions(c *inspect.Container, _ Options) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, link := range c.HostConfig.Links {
		source, aliasPath, ok := strings.Cut(link, ":")
		if !ok {
			continue
		}
		alias := aliasPath[strings.LastIndex(aliasPath, "/")+1:]

		opt := fmt.Sprintf("--link %s:%s", strings.TrimPrefix(source, "/"), alias)
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		out = append(out, opt)
	}
	return out
}

func detachOptions(c *inspect.Container, opts Options) []string {
	if opts.InteractiveTTY || c.Config.AttachStdout {
		return nil
	}
	return []string{"--detach=true"}
}

func ttyOptions(c *inspect.Container, _ Options) []string {
	if !c.Config.Tty {
		return nil
	}
	return []string{"-t"}
}
