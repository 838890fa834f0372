package opener

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/config"
)

// Module provides the configured opener.
var Module = fx.Provide(newOpener)

type openerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newOpener(p openerParams) (Opener, error) {
	switch p.Config.Opener {
	case "browser", "":
		return NewBrowser(), nil
	case "none":
		return NewDetached(p.Logger), nil
	default:
		return nil, fmt.Errorf("unknown opener %q (use browser or none)", p.Config.Opener)
	}
}
