// Package alerts publishes maintenance alerts to an MQTT broker so external
// notification channels (push relays, home dashboards) can deliver them.
package alerts

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/maintenance"
	"github.com/alvarots/checkauto/internal/models"
)

// Alert is the message published for an item that has just gone overdue.
type Alert struct {
	VehicleID     string                     `json:"vehicle_id"`
	Make          string                     `json:"make"`
	Model         string                     `json:"model"`
	Category      models.MaintenanceCategory `json:"category"`
	Status        models.MaintenanceStatus   `json:"status"`
	KmRemaining   int                        `json:"km_remaining"`
	DaysRemaining int                        `json:"days_remaining"`
	Expiration    bool                       `json:"expiration"` // renew vs replace wording
}

// publisher is the slice of mqtt.Client the notifier needs; narrowed for
// tests.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Notifier evaluates a vehicle's active items and publishes one alert per
// newly-overdue item. Alerts are deduplicated per (vehicle, category, status)
// for the lifetime of the process, mirroring the client-side alert behavior.
type Notifier struct {
	client  publisher
	catalog *catalog.Catalog

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewNotifier connects to the broker and returns a ready Notifier.
func NewNotifier(brokerURL string, cat *catalog.Catalog) (*Notifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("checkauto-api").
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	return newNotifier(client, cat), nil
}

func newNotifier(client publisher, cat *catalog.Catalog) *Notifier {
	return &Notifier{
		client:  client,
		catalog: cat,
		seen:    make(map[string]struct{}),
	}
}

// CheckVehicle evaluates the vehicle's active configs at now and publishes
// alerts for items that are overdue and not yet announced. Safe to call on
// every data change; a nil Notifier is a no-op.
func (n *Notifier) CheckVehicle(vehicle models.Vehicle, configs []models.MaintenanceConfig, now time.Time) {
	if n == nil {
		return
	}

	for _, config := range maintenance.ActiveConfigs(vehicle, configs) {
		result := maintenance.Evaluate(vehicle, config, n.catalog, now)
		if result.Status != models.StatusOverdue {
			continue
		}

		key := fmt.Sprintf("%s-%s-%s", vehicle.ID.Hex(), config.Category, result.Status)
		n.mu.Lock()
		_, sent := n.seen[key]
		if !sent {
			n.seen[key] = struct{}{}
		}
		n.mu.Unlock()
		if sent {
			continue
		}

		n.publish(Alert{
			VehicleID:     vehicle.ID.Hex(),
			Make:          vehicle.Make,
			Model:         vehicle.Model,
			Category:      config.Category,
			Status:        result.Status,
			KmRemaining:   result.KmRemaining.Value,
			DaysRemaining: result.DaysRemaining.Value,
			Expiration:    n.catalog.IsExpirationBased(config.Category),
		})
	}
}

// Reset clears the dedup history, e.g. after the user re-enables
// notifications.
func (n *Notifier) Reset() {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.seen = make(map[string]struct{})
	n.mu.Unlock()
}

func (n *Notifier) publish(alert Alert) {
	payload, err := json.Marshal(alert)
	if err != nil {
		log.WithError(err).Error("marshal alert")
		return
	}

	topic := "checkauto/alerts/" + alert.VehicleID
	token := n.client.Publish(topic, 1, false, payload)
	go func() {
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			log.WithError(token.Error()).WithField("topic", topic).Error("publish alert")
		}
	}()
}
