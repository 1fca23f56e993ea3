package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger. Output goes to a rolling file only;
// stdout and stderr belong to the terminal UI.
func New(path, level string) (*zap.SugaredLogger, error) {
	if path == "" {
		p, err := defaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	lvl := zap.InfoLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		lvl = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
		}),
		lvl,
	)

	logger := zap.New(core, zap.AddCaller())
	return logger.Sugar(), nil
}

func defaultLogPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "planboard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "planboard.log"), nil
}
