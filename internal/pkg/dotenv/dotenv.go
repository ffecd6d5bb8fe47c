package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// ErrNoEnvFile .env отсутствует, конфиг берется из окружения.
var ErrNoEnvFile = errors.New("no .env file")

// flagEnv флаги командной строки перекрывают одноименные переменные окружения.
var flagEnv = map[string]string{
	"port":             "PORT",
	"grpc-health-port": "GRPC_HEALTH_PORT",
	"log-level":        "LOG_LEVEL",
}

// Load читает .env без перезаписи уже выставленных переменных, затем применяет флаги.
// ErrNoEnvFile не мешает флагам примениться.
func Load() error {
	fileErr := godotenv.Load()
	if fileErr != nil && !errors.Is(fileErr, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", fileErr)
	}

	if err := applyFlags(flag.CommandLine, os.Args[1:]); err != nil {
		return err
	}

	if fileErr != nil {
		return ErrNoEnvFile
	}
	return nil
}

func applyFlags(fset *flag.FlagSet, args []string) error {
	values := make(map[string]*string, len(flagEnv))
	for name, env := range flagEnv {
		values[name] = fset.String(name, "", fmt.Sprintf("overrides %s environment variable", env))
	}

	if err := fset.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	for name, value := range values {
		if *value == "" {
			continue
		}
		if err := os.Setenv(flagEnv[name], *value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", flagEnv[name], err)
		}
	}
	return nil
}
