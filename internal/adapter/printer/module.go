package printer

import (
	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
)

// Module provides the print router.
var Module = fx.Provide(newPrinter)

func newPrinter(cfg *config.Config) (Printer, error) {
	raw, err := NewRawPrinter(cfg.PrinterType, cfg.PrinterDevice, cfg.PrinterAddress)
	if err != nil {
		return nil, err
	}
	return NewRouter(raw, NewSpoolPrinter(cfg.PrintCommand)), nil
}
