package printer

import (
	"context"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// Router sends thermal payloads to the raw printer and everything else to the spooler.
type Router struct {
	raw   Printer
	spool Printer
}

// NewRouter combines a raw and a spool printer.
func NewRouter(raw, spool Printer) *Router {
	return &Router{raw: raw, spool: spool}
}

func (r *Router) Print(ctx context.Context, job Job) error {
	return r.pick(job.Format).Print(ctx, job)
}

func (r *Router) Name() string { return "router" }

func (r *Router) pick(format model.DocumentFormat) Printer {
	if format == model.FormatThermal {
		return r.raw
	}
	return r.spool
}
