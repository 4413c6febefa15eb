package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"runlike/internal/config"
	rlerrors "runlike/internal/errors"
	"runlike/pkg/runtime"
)

func TestMain(m *testing.M) {
	logDir, err := os.MkdirTemp("", "runlike-cmd-logs-*")
	if err != nil {
		panic(err)
	}
	cfgDir, err := os.MkdirTemp("", "runlike-cmd-config-*")
	if err != nil {
		panic(err)
	}
	os.Setenv("RUNLIKE_LOG_DIR", logDir)
	os.Setenv("XDG_CONFIG_HOME", cfgDir)

	code := m.Run()

	os.RemoveAll(logDir)
	os.RemoveAll(cfgDir)
	os.Exit(code)
}

type mockInspector struct {
	mock.Mock
	closed bool
}

func (m *mockInspector) Inspect(ctx context.Context, container string) ([]byte, error) {
	args := m.Called(ctx, container)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *mockInspector) Close() error {
	m.closed = true
	return nil
}

const dbInspect = `[{"Name":"/db","Config":{"Image":"postgres:16","Env":["POSTGRES_DB=app"],"Cmd":["postgres"],"Tty":true}}]`

func execute(t *testing.T, inspector runtime.Inspector, args ...string) (string, *config.Config, error) {
	t.Helper()

	var seen *config.Config
	cmd := newRootCmd(func(_ context.Context, cfg *config.Config) (runtime.Inspector, error) {
		seen = cfg
		return inspector, nil
	})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), seen, err
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			args: []string{"db"},
			want: "docker run --name=db -e POSTGRES_DB=\"app\" --detach=true -t postgres:16 postgres\n",
		},
		{
			name: "no name and extra options",
			args: []string{"-n", "-e", "--rm", "--extra-opts", "--network=host", "db"},
			want: "docker run --rm --network=host -e POSTGRES_DB=\"app\" --detach=true -t postgres:16 postgres\n",
		},
		{
			name: "pretty interactive",
			args: []string{"--pretty", "-i", "db"},
			want: "docker run \\\n\t--name=db \\\n\t-e POSTGRES_DB=\"app\" \\\n\t-t \\\n\tpostgres:16 \\\n\tpostgres\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := &mockInspector{}
			inspector.On("Inspect", mock.Anything, "db").Return([]byte(dbInspect), nil)

			out, _, err := execute(t, inspector, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.True(t, inspector.closed)
			inspector.AssertExpectations(t)
		})
	}
}

func TestRootCmd_PassesEngineFlags(t *testing.T) {
	inspector := &mockInspector{}
	inspector.On("Inspect", mock.Anything, "db").Return([]byte(dbInspect), nil)

	_, cfg, err := execute(t, inspector, "--engine", "api", "--docker-command", "sudo docker", "db")

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, config.EngineAPI, cfg.Engine)
	assert.Equal(t, "sudo docker", cfg.DockerCommand)
}

func TestRootCmd_ContainerNotFound(t *testing.T) {
	inspector := &mockInspector{}
	inspector.On("Inspect", mock.Anything, "ghost").
		Return(nil, rlerrors.NewNotFoundError("ghost", errors.New("exit status 1")))

	out, _, err := execute(t, inspector, "ghost")

	assert.ErrorIs(t, err, rlerrors.ErrContainerNotFound)
	assert.Empty(t, out)
	assert.True(t, inspector.closed)
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing container", nil},
		{"too many containers", []string{"a", "b"}},
		{"bad engine", []string{"--engine", "ssh", "db"}},
		{"missing config file", []string{"--config", "/nonexistent/runlike.yaml", "db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := &mockInspector{}

			out, _, err := execute(t, inspector, tt.args...)

			assert.Error(t, err)
			assert.Empty(t, out)
			inspector.AssertNotCalled(t, "Inspect", mock.Anything, mock.Anything)
		})
	}
}

func TestRootCmd_InspectorUnavailable(t *testing.T) {
	cmd := newRootCmd(func(context.Context, *config.Config) (runtime.Inspector, error) {
		return nil, rlerrors.NewRuntimeError("Cannot reach the Docker Engine API", "refused", "", nil)
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"db"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, rlerrors.ErrRuntimeFailed)
}
