package utils

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggerConfig controls logger output and prefix.
type LoggerConfig struct {
	Output *os.File
	Prefix string
}

// InitLogger builds the process-wide logger shared by services and middleware.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "[Course Platform] "
	}
	return log.New(cfg.Output, cfg.Prefix, log.LstdFlags|log.LUTC)
}

// LoggingMiddleware logs one line per request with status, latency and client info.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.Printf("%s %s %s %d %s %s",
			c.IP(),
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start),
			c.Get("User-Agent"),
		)

		return err
	}
}
