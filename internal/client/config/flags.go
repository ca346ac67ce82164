package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend gRPC endpoint
//	-f string   base URL of the functions endpoint
//	-k string   public API key
//	-i int      session check interval (in seconds)
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-k", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.FunctionsBaseURL, "f", cfg.FunctionsBaseURL, "functions base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "public API key")
	checkInterval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionCheckInterval = time.Duration(*checkInterval) * time.Second
}
