package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hhResponder/internal/config"
	"hhResponder/internal/logger"
)

func TestRunSkipsWithoutDatabase(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &logger.Zap{Logger: zap.New(core)}

	require.NoError(t, Run(&config.Cfg{}, log))
	require.Equal(t, 1, logs.FilterMessage("БД не настроена, миграции пропущены").Len())
}
