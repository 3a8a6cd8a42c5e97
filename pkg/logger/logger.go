// Package logger builds the zap loggers used by the command line tools.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level   zapcore.Level `yaml:"level" toml:"level"`
	Path    string        `yaml:"path" toml:"path"`
	Mode    FileMode      `yaml:"mode" toml:"mode"`
	DevMode bool          `yaml:"devmode" toml:"devmode"`
}

func DefaultConfig() Config {
	return Config{
		Level: zap.InfoLevel,
		Path:  "stderr",
		Mode:  FileModeTruncate,
	}
}

// New returns a JSON logger writing to conf.Path.  In development mode the
// output is console formatted and DPanic panics.
func New(conf Config) (*zap.Logger, error) {
	w, err := OpenFile(conf.Path, conf.Mode)
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	opts := []zap.Option{zap.ErrorOutput(w)}
	if conf.DevMode {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		opts = append(opts, zap.Development(), zap.AddCaller())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, w, conf.Level), opts...), nil
}
