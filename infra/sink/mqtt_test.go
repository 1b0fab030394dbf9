package sink

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/citypulse/mobidemand/core/model"
)

type fakeToken struct{ err error }

func (t fakeToken) Wait() bool                     { return true }
func (t fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t fakeToken) Error() error { return t.err }

type fakePaho struct {
	mu        sync.Mutex
	connected bool
	published map[string][]byte
	retained  map[string]bool
}

func newFakePaho() *fakePaho {
	return &fakePaho{published: make(map[string][]byte), retained: make(map[string]bool)}
}

func (f *fakePaho) IsConnected() bool { return f.connected }

func (f *fakePaho) Connect() paho.Token {
	f.connected = true
	return fakeToken{}
}

func (f *fakePaho) Disconnect(uint) { f.connected = false }

func (f *fakePaho) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[topic] = payload.([]byte)
	f.retained[topic] = retained
	return fakeToken{}
}

func newTestMQTTSink(t *testing.T, fp *fakePaho) *MQTTSink {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return fp }
	t.Cleanup(func() { newMQTTClient = orig })

	cfg := MQTTConfig{Enabled: true, Broker: "tcp://localhost:1883", TopicPrefix: "mobidemand", QoS: 1}
	cfg.SetDefaults()
	s, err := NewMQTTSink(cfg)
	if err != nil {
		t.Fatalf("new mqtt sink: %v", err)
	}
	return s
}

func TestMQTTSinkPublishesDemand(t *testing.T) {
	fp := newFakePaho()
	s := newTestMQTTSink(t, fp)

	rec := model.DemandRecord{
		Timestamp: time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC),
		StationID: 9, StationName: "Station_9_Dwarka", AreaType: model.AreaResidential,
		TripCount: 14,
	}
	if err := s.RecordDemand([]model.DemandRecord{rec}); err != nil {
		t.Fatalf("record demand: %v", err)
	}
	payload, ok := fp.published["mobidemand/demand/9"]
	if !ok {
		t.Fatalf("no message on demand topic, got %v", fp.published)
	}
	var got model.DemandRecord
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.TripCount != 14 || got.StationID != 9 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if fp.retained["mobidemand/demand/9"] {
		t.Fatalf("demand messages must not be retained")
	}
}

func TestMQTTSinkRetainsStationsAndSummary(t *testing.T) {
	fp := newFakePaho()
	s := newTestMQTTSink(t, fp)

	if err := s.RecordStations([]model.Station{{ID: 2, Name: "Station_2_JNU"}}); err != nil {
		t.Fatalf("record stations: %v", err)
	}
	if err := s.RecordSummary(model.DatasetSummary{RunID: "r1"}); err != nil {
		t.Fatalf("record summary: %v", err)
	}
	if !fp.retained["mobidemand/stations/2"] {
		t.Fatalf("station messages should be retained")
	}
	if !fp.retained["mobidemand/summary"] {
		t.Fatalf("summary message should be retained")
	}
}

func TestMQTTSinkClose(t *testing.T) {
	fp := newFakePaho()
	s := newTestMQTTSink(t, fp)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if fp.connected {
		t.Fatalf("expected disconnect on close")
	}
}

func TestMQTTConfigValidate(t *testing.T) {
	cfg := MQTTConfig{Enabled: true}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing broker")
	}
	cfg.Broker = "tcp://localhost:1883"
	cfg.ClientCert = "cert.pem"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for cert without key")
	}
	cfg.ClientKey = "key.pem"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (MQTTConfig{}).Validate(); err != nil {
		t.Fatalf("disabled sink should not be validated: %v", err)
	}
}
