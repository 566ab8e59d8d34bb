package main

import "time"

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=4000" validate:"min=1,max=65535"`
	LogLevel             string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=16" validate:"min=1"`
	ReadHeaderTimeout    time.Duration `env:"READ_HEADER_TIMEOUT,default=5s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}
