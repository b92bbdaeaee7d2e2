package service

import (
	"time"

	"github.com/ziflex/lecho/v3"

	"github.com/lngateway/lngateway/config"
	"github.com/lngateway/lngateway/lib/session"
	"github.com/lngateway/lngateway/ln"
)

// GatewayService bundles everything the request handlers need: the config,
// the single shared node handle and the session machinery. The node handle
// is passed around explicitly rather than living in a global.
type GatewayService struct {
	Config     *Config
	Settings   *config.Settings
	Node       *ln.Conn
	Logger     *lecho.Logger
	Sessions   *session.Store
	SessionKey []byte
}

func (svc *GatewayService) SessionTTL() time.Duration {
	return time.Duration(svc.Config.SessionTTL) * time.Second
}
