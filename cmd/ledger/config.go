package main

import (
	"flag"
	"os"
	"time"
)

type Config struct {
	endpoint         string
	rateFeedEndpoint string
	dsn              string
	logLevel         string
	env              string
	ratePollInterval time.Duration
}

func NewConfig() Config {
	var (
		endpoint         string
		rateFeedEndpoint string
		dsn              string
		logLevel         string
		env              string
		ratePollInterval time.Duration
	)

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&rateFeedEndpoint, "r", "", "address of external BCV rate feed")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.DurationVar(&ratePollInterval, "i", time.Hour, "interval between rate feed polls")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if feedAddress := os.Getenv("RATE_FEED_ADDRESS"); feedAddress != "" {
		rateFeedEndpoint = feedAddress
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if interval := os.Getenv("RATE_POLL_INTERVAL"); interval != "" {
		if parsed, err := time.ParseDuration(interval); err == nil {
			ratePollInterval = parsed
		}
	}

	if l := os.Getenv("LOG_LEVEL"); l != "" {
		logLevel = l
	} else {
		logLevel = "error"
	}

	if e := os.Getenv("ENV"); e != "" {
		env = e
	} else {
		env = "production"
	}

	return Config{
		endpoint,
		rateFeedEndpoint,
		dsn,
		logLevel,
		env,
		ratePollInterval,
	}
}
