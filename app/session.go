package app

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/rueidis"
	"github.com/reportsink/reportsink/utils"
)

// redisStorage adapts a rueidis client to fiber.Storage so sessions survive
// process restarts.
type redisStorage struct {
	client rueidis.Client
}

func (s *redisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Do(context.Background(), s.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if errors.Is(err, rueidis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	return val, nil
}

func (s *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	if exp > 0 {
		return s.client.Do(context.Background(), s.client.B().Set().Key(key).Value(rueidis.BinaryString(val)).Ex(exp).Build()).Error()
	}

	return s.client.Do(context.Background(), s.client.B().Set().Key(key).Value(rueidis.BinaryString(val)).Build()).Error()
}

func (s *redisStorage) Delete(key string) error {
	return s.client.Do(context.Background(), s.client.B().Del().Key(key).Build()).Error()
}

func (s *redisStorage) Reset() error {
	return s.client.Do(context.Background(), s.client.B().Flushdb().Build()).Error()
}

func (s *redisStorage) Close() error {
	s.client.Close()

	return nil
}

func NewSessionStore(client rueidis.Client) *session.Store {
	return session.New(session.Config{
		Storage:        &redisStorage{client: client},
		Expiration:     utils.SessionExpiration(),
		CookieDomain:   utils.CookieDomain(),
		CookiePath:     "/",
		CookieSecure:   !utils.IsDebug(),
		CookieHTTPOnly: true,
		CookieSameSite: "Strict",
	})
}
