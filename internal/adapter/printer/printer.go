// Package printer sends fetched documents to local print devices.
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// ErrNoPrinter is returned when no device can serve the job.
var ErrNoPrinter = errors.New("printer: no printer configured")

// Job is a single document handed to a printer.
type Job struct {
	URL      string
	Filename string
	Format   model.DocumentFormat
	Payload  model.Payload
}

// Printer prints a job.
type Printer interface {
	Print(ctx context.Context, job Job) error
	Name() string
}

// USBPrinter writes raw bytes to a device file such as /dev/usb/lp0.
type USBPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) *USBPrinter {
	return &USBPrinter{path: devicePath}
}

func (p *USBPrinter) Print(_ context.Context, job Job) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job.Payload.Data); err != nil {
		return fmt.Errorf("printer: write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *USBPrinter) Name() string { return "usb" }

// NetworkPrinter sends raw bytes over TCP, usually to port 9100.
type NetworkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
func NewNetworkPrinter(address string) *NetworkPrinter {
	return &NetworkPrinter{
		address:      address,
		dialTimeout:  5 * time.Second,
		writeTimeout: 10 * time.Second,
	}
}

func (p *NetworkPrinter) Print(ctx context.Context, job Job) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))

	if _, err := conn.Write(job.Payload.Data); err != nil {
		return fmt.Errorf("printer: write to %s: %w", p.address, err)
	}
	return nil
}

func (p *NetworkPrinter) Name() string { return "network" }

// NullPrinter drops jobs. It stands in when no raw printer is attached.
type NullPrinter struct{}

func (NullPrinter) Print(context.Context, Job) error { return ErrNoPrinter }

func (NullPrinter) Name() string { return "none" }

// NewRawPrinter creates the raw thermal printer for printerType.
func NewRawPrinter(printerType, devicePath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if devicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printer type")
		}
		return NewUSBPrinter(devicePath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NullPrinter{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
