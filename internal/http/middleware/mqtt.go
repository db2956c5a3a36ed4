package middleware

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var (
	mqttMutex  sync.Mutex
	mqttClient mqtt.Client
	brokerURL  = "tcp://0.0.0.0:1883" // Default MQTT broker URL
)

// RefreshTopic is where a device listens for out-of-band refresh signals.
func RefreshTopic(deviceID string) string {
	return fmt.Sprintf("pharos/device/%s/refresh", deviceID)
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// SetBrokerURL allows configuration of the MQTT broker URL
func SetBrokerURL(url string) {
	brokerURL = url
}

// InitMQTT connects the server's publishing client. The broker is
// optional infrastructure: devices that cannot be reached over MQTT still
// pick up changes on their next poll.
func InitMQTT(clientName string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	mqttMutex.Lock()
	mqttClient = client
	mqttMutex.Unlock()

	log.Info().Str("broker", brokerURL).Msg("MQTT client initialized")
	return nil
}

// NotifyDeviceRefresh tells one device its cached bundle may be stale.
func NotifyDeviceRefresh(deviceID string) {
	publish(RefreshTopic(deviceID))
}

// NotifyAllDevices broadcasts a refresh signal to every device.
func NotifyAllDevices() {
	publish("pharos/device/all/refresh")
}

func publish(topic string) {
	mqttMutex.Lock()
	client := mqttClient
	mqttMutex.Unlock()
	if client == nil {
		return
	}
	token := client.Publish(topic, 1, false, []byte("refresh"))
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish refresh signal")
	}
}

// CleanupMQTT disconnects the publishing client.
func CleanupMQTT() {
	mqttMutex.Lock()
	defer mqttMutex.Unlock()
	if mqttClient != nil {
		mqttClient.Disconnect(250)
		mqttClient = nil
		log.Info().Msg("MQTT client disconnected")
	}
}
