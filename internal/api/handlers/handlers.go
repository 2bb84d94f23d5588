package handlers

import (
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/internal/configuration"
)

const (
	adminPageSize   = 20
	galleryPageSize = 9
)

var (
	authConfig    configuration.AuthConfig
	publicBaseURL string
	logger        = zap.NewNop()
)

// Configure wires the handler package once at startup. Nothing here reads
// the environment at request time.
func Configure(auth configuration.AuthConfig, storagePublicBaseURL string, log *zap.Logger) {
	authConfig = auth
	publicBaseURL = storagePublicBaseURL
	if log != nil {
		logger = log
	}
}

func publicURL(key string) string {
	return publicBaseURL + "/" + key
}
