package runtime

import (
	"context"
	"fmt"
	"log/slog"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/client"

	rlerrors "runlike/internal/errors"
)

// DockerRuntime inspects containers through the Docker Engine API.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime creates a new DockerRuntime instance using client.FromEnv.
func NewDockerRuntime(ctx context.Context) (*DockerRuntime, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	// Check if Docker daemon is accessible
	if _, err := dockerClient.Ping(ctx); err != nil {
		_ = dockerClient.Close()
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &DockerRuntime{
		client: dockerClient,
	}, nil
}

// Inspect returns the raw inspection body for a single container.
func (d *DockerRuntime) Inspect(ctx context.Context, container string) ([]byte, error) {
	slog.Debug("Inspecting container via Engine API", "container", container, "host", d.client.DaemonHost())

	_, raw, err := d.client.ContainerInspectWithRaw(ctx, container, false)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return nil, rlerrors.NewNotFoundError(container, err)
		}
		return nil, rlerrors.NewInspectionError(container, err.Error(), err)
	}

	return raw, nil
}

// Close releases the underlying client.
func (d *DockerRuntime) Close() error {
	return d.client.Close()
}
