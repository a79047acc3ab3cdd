package gap

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Nc stays nil when no nats url is configured, publishing is skipped in that case.
var Nc *nats.Conn

func InitializeToNats() error {
	url := viper.GetString("nats.url")
	if len(url) == 0 {
		log.Warn().Msg("No nats url configured, events will not be delivered.")
		return nil
	}

	conn, err := nats.Connect(url, nats.Name(viper.GetString("id")))
	if err != nil {
		return fmt.Errorf("unable to connect nats: %v", err)
	}
	Nc = conn

	log.Info().Str("url", url).Msg("Connected to nats.")
	return nil
}

func Publish(subject string, data any) error {
	if Nc == nil {
		return nil
	}
	raw, err := jsoniter.Marshal(data)
	if err != nil {
		return fmt.Errorf("unable to encode event: %v", err)
	}
	return Nc.Publish(subject, raw)
}

func Subscribe(subject string, handler func(data []byte)) (*nats.Subscription, error) {
	if Nc == nil {
		return nil, nil
	}
	return Nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}
