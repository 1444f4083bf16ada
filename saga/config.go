package saga

import "go.uber.org/zap"

type Config struct {
	Logger *zap.Logger // default: zap.NewNop()
}

func NewConfig(logger *zap.Logger) Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Config{
		Logger: logger,
	}
}

var defaultConfig = NewConfig(nil)
