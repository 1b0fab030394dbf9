package sink

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/citypulse/mobidemand/core/model"
	"github.com/citypulse/mobidemand/infra/logger"
)

// MQTTConfig defines the connection parameters for the MQTT sink.
type MQTTConfig struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	UseTLS      bool   `json:"use_tls"`
	ClientCert  string `json:"client_cert"`
	ClientKey   string `json:"client_key"`
	CABundle    string `json:"ca_bundle"`
	QoS         byte   `json:"qos"`
	TopicPrefix string `json:"topic_prefix"`
}

// SetDefaults applies fallback values for optional fields.
func (c *MQTTConfig) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "mobidemand"
	}
	if c.ClientID == "" {
		c.ClientID = fmt.Sprintf("mobidemand-%d", time.Now().UnixNano())
	}
}

// Validate checks mandatory fields when the sink is enabled.
func (c MQTTConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt sink: broker is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt sink: qos must be 0, 1 or 2")
	}
	if (c.ClientCert == "") != (c.ClientKey == "") {
		return fmt.Errorf("mqtt sink: client_cert and client_key must be set together")
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTSink publishes generated records as JSON messages, one topic per
// dataset under the configured prefix.
type MQTTSink struct {
	cli    pahoClient
	qos    byte
	prefix string
	log    logger.Logger
}

// NewMQTTSink connects to the broker and returns a ready sink.
func NewMQTTSink(cfg MQTTConfig) (*MQTTSink, error) {
	opts, err := newClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt-sink")
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected") }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Warnf("MQTT connection lost: %v", err) }

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTSink{cli: cli, qos: cfg.QoS, prefix: cfg.TopicPrefix, log: log}, nil
}

func newClientOptions(cfg MQTTConfig) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.CABundle != "" {
			pem, err := os.ReadFile(cfg.CABundle)
			if err != nil {
				return nil, fmt.Errorf("read ca bundle: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("ca bundle %s contains no certificates", cfg.CABundle)
			}
			tlsCfg.RootCAs = pool
		}
		if cfg.ClientCert != "" {
			cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
			if err != nil {
				return nil, fmt.Errorf("load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

func (s *MQTTSink) publish(topic string, payload any, retained bool) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	token := s.cli.Publish(topic, s.qos, retained, data)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// RecordDemand publishes each observation to <prefix>/demand/<station_id>.
func (s *MQTTSink) RecordDemand(recs []model.DemandRecord) error {
	for _, r := range recs {
		topic := fmt.Sprintf("%s/demand/%d", s.prefix, r.StationID)
		if err := s.publish(topic, r, false); err != nil {
			return err
		}
	}
	return nil
}

// RecordWeather publishes each observation to <prefix>/weather.
func (s *MQTTSink) RecordWeather(recs []model.WeatherRecord) error {
	for _, r := range recs {
		if err := s.publish(s.prefix+"/weather", r, false); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvents publishes each event to <prefix>/events.
func (s *MQTTSink) RecordEvents(evs []model.CityEvent) error {
	for _, e := range evs {
		if err := s.publish(s.prefix+"/events", e, false); err != nil {
			return err
		}
	}
	return nil
}

// RecordStations publishes the inventory as retained messages so late
// subscribers see the current station set.
func (s *MQTTSink) RecordStations(sts []model.Station) error {
	for _, st := range sts {
		topic := fmt.Sprintf("%s/stations/%d", s.prefix, st.ID)
		if err := s.publish(topic, st, true); err != nil {
			return err
		}
	}
	return nil
}

// RecordSummary publishes the run summary as a retained message.
func (s *MQTTSink) RecordSummary(sum model.DatasetSummary) error {
	return s.publish(s.prefix+"/summary", sum, true)
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() error {
	if s.cli.IsConnected() {
		s.cli.Disconnect(250)
	}
	return nil
}
