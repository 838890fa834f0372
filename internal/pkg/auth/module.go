package auth

import (
	"github.com/google/uuid"
	"github.com/polkiloo/posdocs/internal/config"
	"go.uber.org/fx"
)

// Module provides handle signing primitives via fx.
var Module = fx.Options(
	fx.Provide(newHandleSigner),
)

type signerParams struct {
	fx.In

	Config *config.Config
}

func newHandleSigner(p signerParams) Signer {
	secret := p.Config.BlobSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	return NewHMACSigner(secret, Options{TTL: p.Config.BlobTTL})
}
