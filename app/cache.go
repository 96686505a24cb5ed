package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/redis/rueidis"
)

// NewCache connects to Redis. It backs the session storage.
func NewCache() (rueidis.Client, error) {
	port, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		port = 6379
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", os.Getenv("REDIS_HOST"), port)},
		Password:    os.Getenv("REDIS_PASS"),
		SelectDB:    0,
	})
	if err != nil && !errors.Is(err, rueidis.Nil) {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}

	return client, nil
}
