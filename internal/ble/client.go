// Package ble connects to GoCube devices over Bluetooth Low Energy.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubeengine/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

var (
	serviceUUID = bluetooth.NewUUID(uuid.MustParse(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(uuid.MustParse(protocol.RxCharUUID))
)

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	Address bluetooth.Address
	RSSI    int16
}

// ID returns the platform address string.
func (r ScanResult) ID() string {
	return r.Address.String()
}

// Client is a connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	battery    int

	onMessage func(*protocol.Message)
	onError   func(error)
}

// NewClient enables the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, battery: -1}, nil
}

// SetMessageCallback sets the callback for decoded frames. It runs on the
// adapter's notification goroutine.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// SetErrorCallback sets the callback for frames that fail to parse.
func (c *Client) SetErrorCallback(cb func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = cb
}

// Scan returns the GoCubes advertising within timeout.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[r.Address.String()] {
				return
			}
			seen[r.Address.String()] = true
			results = append(results, ScanResult{Name: name, Address: r.Address, RSSI: r.RSSI})
		})
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// Connect connects to a scanned device and subscribes to notifications.
func (c *Client) Connect(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.mu.Unlock()

	return c.SendCommand(protocol.CmdRequestBattery)
}

// ConnectFirst scans for up to timeout and connects to the first GoCube.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) (ScanResult, error) {
	results, err := c.Scan(ctx, timeout)
	if err != nil {
		return ScanResult{}, err
	}
	if len(results) == 0 {
		return ScanResult{}, ErrDeviceNotFound
	}
	return results[0], c.Connect(ctx, results[0])
}

// Disconnect closes the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	return err
}

// IsConnected reports whether a device is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last reported battery level, or -1.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		if _, err := c.rxChar.Write(data); err != nil {
			return fmt.Errorf("failed to send command 0x%02X: %w", cmd, err)
		}
	}
	return nil
}

// ResetSolved tells the cube its current state is solved, matching a
// freshly bootstrapped engine.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.Parse(data)

	c.mu.Lock()
	if err == nil && msg.Type == protocol.MsgBattery {
		if level, derr := protocol.DecodeBattery(msg.Payload); derr == nil {
			c.battery = level
		}
	}
	onMessage, onError := c.onMessage, c.onError
	c.mu.Unlock()

	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onMessage != nil {
		onMessage(msg)
	}
}
