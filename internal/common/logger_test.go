package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLoggerIsUsableBeforeInit(t *testing.T) {
	logger := GetLogger()
	require.NotNil(t, logger)
	logger.Debug().Str("stage", "startup").Msg("console writer configured")
}

func TestInitLoggerConfiguredOutputs(t *testing.T) {
	config := NewDefaultConfig()
	config.Logging.Level = "debug"
	config.Logging.Output = []string{"console", "file"}

	logger := InitLogger(config)
	require.NotNil(t, logger)
	logger.Info().Str("check", "writers").Msg("console and file writers attached")
}
