package link

import (
	"fmt"
	"log/slog"
	"sync"

	"lightstick.klederson.com/internal/config"
	"tinygo.org/x/bluetooth"
)

// Peripheral advertises the stick over BLE and notifies a single event
// characteristic to the connected host.
type Peripheral struct {
	name    string
	adapter *bluetooth.Adapter
	log     *slog.Logger

	mu        sync.Mutex
	adv       *bluetooth.Advertisement
	char      bluetooth.Characteristic
	connected bool
	running   bool
}

// NewPeripheral creates a peripheral on the default adapter. A nil logger
// uses slog.Default().
func NewPeripheral(name string, logger *slog.Logger) *Peripheral {
	if logger == nil {
		logger = slog.Default()
	}
	return &Peripheral{
		name:    name,
		adapter: bluetooth.DefaultAdapter,
		log:     logger.With("component", "ble"),
	}
}

// Start enables the adapter, registers the event service and begins
// advertising.
func (p *Peripheral) Start() error {
	svcUUID, err := bluetooth.ParseUUID(config.ServiceUUID)
	if err != nil {
		return fmt.Errorf("invalid service UUID: %w", err)
	}
	charUUID, err := bluetooth.ParseUUID(config.EventCharUUID)
	if err != nil {
		return fmt.Errorf("invalid characteristic UUID: %w", err)
	}

	if err := p.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	p.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		p.mu.Lock()
		p.connected = connected
		p.mu.Unlock()
		if connected {
			p.log.Info("host connected", "address", device.Address.String())
		} else {
			p.log.Info("host disconnected", "address", device.Address.String())
		}
	})

	initial, _ := Packet{}.MarshalBinary()
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.adapter.AddService(&bluetooth.Service{
		UUID: svcUUID,
		Characteristics: []bluetooth.CharacteristicConfig{{
			Handle: &p.char,
			UUID:   charUUID,
			Value:  initial,
			Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to add event service: %w", err)
	}

	p.adv = p.adapter.DefaultAdvertisement()
	err = p.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    p.name,
		ServiceUUIDs: []bluetooth.UUID{svcUUID},
		Interval:     bluetooth.NewDuration(config.AdvIntervalMin),
	})
	if err != nil {
		return fmt.Errorf("failed to configure advertisement: %w", err)
	}
	if err := p.adv.Start(); err != nil {
		return fmt.Errorf("failed to start advertising: %w", err)
	}

	p.running = true
	p.log.Info("advertising", "name", p.name, "service", svcUUID.String())
	return nil
}

// Publish notifies the host with the encoded packet.
func (p *Peripheral) Publish(pkt Packet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || !p.connected {
		return ErrNotConnected
	}
	b, err := pkt.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := p.char.Write(b); err != nil {
		return fmt.Errorf("failed to notify event: %w", err)
	}
	p.log.Debug("event published", "packet", pkt.String())
	return nil
}

// Connected reports whether a host is connected.
func (p *Peripheral) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Stop halts advertising.
func (p *Peripheral) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	if p.adv != nil {
		_ = p.adv.Stop()
	}
}
