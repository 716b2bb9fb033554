// Where: stackup/internal/compose/client.go
// What: Docker SDK client construction and daemon preflight.
// Why: Surface an unreachable daemon before compose emits an opaque failure.
package compose

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// DockerClient defines the subset of Docker SDK methods used by this package.
// This interface enables mocking the Docker client in tests.
type DockerClient interface {
	Ping(ctx context.Context) (types.Ping, error)
}

// NewDockerClient constructs a Docker SDK client using environment defaults.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// PingDaemon verifies that the Docker daemon is reachable.
func PingDaemon(ctx context.Context, c DockerClient) error {
	if c == nil {
		return fmt.Errorf("docker client is nil")
	}
	if _, err := c.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon is not reachable: %w", err)
	}
	return nil
}
