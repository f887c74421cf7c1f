package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/weekend-fixtures/internal/config"
	"github.com/riskibarqy/weekend-fixtures/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "weekend-fixtures-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, ServiceName: "weekend-fixtures-api", UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestPprofAndPyroscope_Disabled(t *testing.T) {
	srv := StartPprofServer(config.Config{}, logging.NewNop())
	require.Nil(t, srv)
	require.NoError(t, StopPprofServer(context.Background(), srv, nil))

	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stop())
}

func TestStack_AllDisabled(t *testing.T) {
	stack, err := Start(context.Background(), config.Config{ServiceName: "weekend-fixtures-api"}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stack.Shutdown(context.Background()))

	var nilStack *Stack
	require.NoError(t, nilStack.Shutdown(context.Background()))
}
