package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/kilianp07/battsim/core/metrics"
	"github.com/kilianp07/battsim/core/sim"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	topics   []string
	payloads [][]byte
}

func (c *fakeClient) Connect() paho.Token { return &fakeToken{} }
func (c *fakeClient) Disconnect(uint)     {}
func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload.([]byte))
	return &fakeToken{}
}

func TestPublisherTopicsAndPayload(t *testing.T) {
	fake := &fakeClient{}
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return fake }
	defer func() { newMQTTClient = orig }()

	pub, err := NewPublisher(Config{Enabled: true, Broker: "tcp://localhost:1883", TopicPrefix: "battsim"})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	defer pub.Close()

	sample := coremetrics.CellSample{RunID: "r1", Time: sim.Time(20 * time.Second), RemainingJ: 30000}
	if err := pub.RecordCellSample(sample); err != nil {
		t.Fatalf("record sample: %v", err)
	}
	if err := pub.RecordDepletion(coremetrics.DepletionRecord{RunID: "r1"}); err != nil {
		t.Fatalf("record depletion: %v", err)
	}

	if len(fake.topics) != 2 || fake.topics[0] != "battsim/r1/sample" || fake.topics[1] != "battsim/r1/depleted" {
		t.Fatalf("topics: %v", fake.topics)
	}
	var decoded coremetrics.CellSample
	if err := json.Unmarshal(fake.payloads[0], &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.RemainingJ != 30000 || decoded.RunID != "r1" {
		t.Fatalf("payload mismatch: %+v", decoded)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Enabled: false}).Validate(); err != nil {
		t.Fatalf("disabled config must validate: %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatal("expected error for missing broker")
	}
	if err := (Config{Enabled: true, Broker: "tcp://b", QoS: 3}).Validate(); err == nil {
		t.Fatal("expected error for bad qos")
	}
}

func TestConfigSetDefaults(t *testing.T) {
	c := Config{}
	c.SetDefaults()
	if c.ClientID != "battsim" || c.TopicPrefix != "battsim" {
		t.Fatalf("defaults not applied: %+v", c)
	}
}
