package obs

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Configure sets the process-wide logger level and format ("text" or "json").
func Configure(level, format string) error {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stdout)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("configure logging: unknown format %q", format)
	}

	return nil
}
