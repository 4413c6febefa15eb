package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rlerrors "runlike/internal/errors"
	"runlike/internal/translator"
)

// MockInspector is a mock implementation of the Inspector interface.
type MockInspector struct {
	*mock.Mock
}

func NewMockInspector() *MockInspector {
	return &MockInspector{Mock: &mock.Mock{}}
}

func (m *MockInspector) Inspect(ctx context.Context, container string) ([]byte, error) {
	args := m.Called(ctx, container)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

const webInspect = `[{
	"Id": "4f1c9a",
	"Name": "/web",
	"Config": {
		"Image": "nginx:1.25",
		"Env": ["TZ=UTC"],
		"Cmd": ["nginx", "-g", "daemon off;"],
		"AttachStdout": false,
		"Tty": false
	},
	"HostConfig": {"Binds": ["/srv/www:/usr/share/nginx/html:ro"]},
	"NetworkSettings": {"Ports": {"80/tcp": [{"HostIp": "", "HostPort": "8080"}]}}
}]`

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "plain",
			opts: Options{Container: "web"},
			want: `docker run --name=web -e TZ="UTC" --volume="/srv/www:/usr/share/nginx/html:ro" -p 8080:80/tcp --detach=true nginx:1.25 nginx -g daemon off;`,
		},
		{
			name: "no name with extra options",
			opts: Options{
				Container: "web",
				Translate: translator.Options{NoName: true, ExtraOptions: []string{"--rm"}},
			},
			want: `docker run --rm -e TZ="UTC" --volume="/srv/www:/usr/share/nginx/html:ro" -p 8080:80/tcp --detach=true nginx:1.25 nginx -g daemon off;`,
		},
		{
			name: "pretty interactive",
			opts: Options{
				Container: "web",
				Translate: translator.Options{NoName: true, InteractiveTTY: true},
				Pretty:    true,
			},
			want: "docker run \\\n\t-e TZ=\"UTC\" \\\n\t--volume=\"/srv/www:/usr/share/nginx/html:ro\" \\\n\t-p 8080:80/tcp \\\n\tnginx:1.25 \\\n\tnginx -g daemon off;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := NewMockInspector()
			inspector.On("Inspect", mock.Anything, "web").Return([]byte(webInspect), nil)

			got, err := NewRunner(inspector).Run(context.Background(), tt.opts)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			inspector.AssertExpectations(t)
		})
	}
}

func TestRunner_Run_InspectionErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "not found is passed through",
			err:      rlerrors.NewNotFoundError("ghost", errors.New("exit status 1")),
			sentinel: rlerrors.ErrContainerNotFound,
		},
		{
			name:     "untyped error becomes inspection failure",
			err:      errors.New("connection refused"),
			sentinel: rlerrors.ErrInspectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := NewMockInspector()
			inspector.On("Inspect", mock.Anything, "ghost").Return(nil, tt.err)

			got, err := NewRunner(inspector).Run(context.Background(), Options{Container: "ghost"})

			assert.Empty(t, got)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.NotErrorIs(t, err, rlerrors.ErrFieldAccess)
			inspector.AssertExpectations(t)
		})
	}
}

func TestRunner_Run_BadOutput(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sentinel error
	}{
		{"not json", "Error: something", rlerrors.ErrParseFailed},
		{"empty list", "[]", rlerrors.ErrParseFailed},
		{"missing image", `[{"Name":"/web","Config":{}}]`, rlerrors.ErrFieldAccess},
		{"missing name", `[{"Config":{"Image":"nginx"}}]`, rlerrors.ErrFieldAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := NewMockInspector()
			inspector.On("Inspect", mock.Anything, "web").Return([]byte(tt.raw), nil)

			_, err := NewRunner(inspector).Run(context.Background(), Options{Container: "web"})

			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestRunner_Run_RequiresContainer(t *testing.T) {
	inspector := NewMockInspector()

	_, err := NewRunner(inspector).Run(context.Background(), Options{})

	require.Error(t, err)
	inspector.AssertNotCalled(t, "Inspect", mock.Anything, mock.Anything)
}
