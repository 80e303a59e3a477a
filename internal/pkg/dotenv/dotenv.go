package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env (или переданные файлы) и применяет флаги командной строки.
// Флаги важнее окружения: --port и --grpc-port позволяют поднять несколько
// инстансов из одного .env.
func Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}

	var (
		httpPort string
		grpcPort string
	)
	flag.StringVar(&httpPort, "port", "", "HTTP port (overrides PORT)")
	flag.StringVar(&grpcPort, "grpc-port", "", "gRPC health port (overrides GRPC_PORT)")
	flag.Parse()

	overrides := map[string]string{
		"PORT":      httpPort,
		"GRPC_PORT": grpcPort,
	}
	for env, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(env, value); err != nil {
			return fmt.Errorf("set %s: %w", env, err)
		}
	}
	return nil
}
