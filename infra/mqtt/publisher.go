package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/battsim/core/logger"
	coremetrics "github.com/kilianp07/battsim/core/metrics"
	infralogger "github.com/kilianp07/battsim/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "battsim"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "battsim"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("qos must be 0, 1 or 2")
	}
	return nil
}

type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher sends cell telemetry to an MQTT broker. It implements the
// metrics sink interfaces so it can fan in with the other sinks.
type Publisher struct {
	cli    pahoClient
	prefix string
	qos    byte
	log    logger.Logger
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		log:    infralogger.New("mqtt-publisher"),
	}, nil
}

// RecordCellSample publishes the sample on <prefix>/<run>/sample.
func (p *Publisher) RecordCellSample(s coremetrics.CellSample) error {
	return p.publish(fmt.Sprintf("%s/%s/sample", p.prefix, s.RunID), s)
}

// RecordDepletion publishes the terminal record on <prefix>/<run>/depleted.
func (p *Publisher) RecordDepletion(rec coremetrics.DepletionRecord) error {
	return p.publish(fmt.Sprintf("%s/%s/depleted", p.prefix, rec.RunID), rec)
}

func (p *Publisher) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if token := p.cli.Publish(topic, p.qos, false, data); token.Wait() && token.Error() != nil {
		p.log.Errorf("publish %s: %v", topic, token.Error())
		return token.Error()
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
