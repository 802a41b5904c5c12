package dotenv

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Load читает флаги командной строки и .env файл. Флаг --port
// переопределяет переменную PORT.
func Load() error {
	var (
		portFlag string
		envFile  string
	)
	pflag.StringVarP(&portFlag, "port", "p", "", "Server port (overrides PORT environment variable)")
	pflag.StringVar(&envFile, "env-file", ".env", "Path to .env file")
	pflag.Parse()

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
