package app

import (
	"context"
	"fmt"

	"runlike/internal/config"
	rlerrors "runlike/internal/errors"
	"runlike/internal/runtime"
	runtimePkg "runlike/pkg/runtime"
)

// InspectorFactory builds the Inspector selected by the engine setting. It
// keeps the orchestrator free of concrete runtime types.
type InspectorFactory struct{}

// NewInspectorFactory creates a new instance of InspectorFactory.
func NewInspectorFactory() *InspectorFactory {
	return &InspectorFactory{}
}

// GetInspector returns the inspector for cfg.Engine. The api engine pings
// the daemon before returning.
func (f *InspectorFactory) GetInspector(ctx context.Context, cfg *config.Config) (runtimePkg.Inspector, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	switch cfg.Engine {
	case config.EngineCLI:
		inspector, err := runtime.NewCLIRuntime(cfg.DockerCommand)
		if err != nil {
			return nil, rlerrors.NewConfigError("Invalid docker command", err.Error(),
				"Set docker_command to a program such as \"docker\" or \"sudo docker\"", err)
		}
		return inspector, nil
	case config.EngineAPI:
		inspector, err := runtime.NewDockerRuntime(ctx)
		if err != nil {
			return nil, rlerrors.NewRuntimeError("Cannot reach the Docker Engine API", err.Error(),
				"Check DOCKER_HOST or use --engine cli", err)
		}
		return inspector, nil
	default:
		return nil, rlerrors.NewConfigError("Unsupported engine: "+cfg.Engine, "",
			"Use --engine cli or --engine api", nil)
	}
}
