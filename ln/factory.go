package ln

import (
	"context"
	"fmt"

	"github.com/lngateway/lngateway/config"
)

const (
	NodeTypeLndGrpc = "lnd-grpc"
	NodeTypeLndRest = "lnd-rest"
	NodeTypeCln     = "cln"
)

// Connect builds the one configured backend adapter and wraps it in the
// shared Conn handle. This is the only place construction and credential
// errors surface; a successful return means the adapter is assumed usable.
func Connect(ctx context.Context, settings *config.Settings) (*Conn, error) {
	client, err := buildClient(ctx, settings)
	if err != nil {
		return nil, err
	}
	return NewConn(client), nil
}

func buildClient(ctx context.Context, settings *config.Settings) (LightningClient, error) {
	switch settings.Node.Type {
	case NodeTypeLndGrpc:
		if settings.LndGrpc == nil {
			return nil, fmt.Errorf("%w: [lnd-grpc] section missing", ErrConfig)
		}
		return NewLndGrpcClient(ctx, LndGrpcOptions{
			Address:     settings.LndGrpc.Host,
			MacaroonHex: settings.LndGrpc.MacaroonHex,
			CertHex:     settings.LndGrpc.CertHex,
		})
	case NodeTypeLndRest:
		if settings.LndRest == nil {
			return nil, fmt.Errorf("%w: [lnd-rest] section missing", ErrConfig)
		}
		return NewLndRestClient(settings.LndRest.Host, settings.LndRest.MacaroonHex, settings.LndRest.CertPath)
	case NodeTypeCln:
		if settings.Cln == nil {
			return nil, fmt.Errorf("%w: [cln] section missing", ErrConfig)
		}
		return NewClnClient(settings.Cln.Host), nil
	default:
		return nil, fmt.Errorf("%w: unsupported node type %q", ErrConfig, settings.Node.Type)
	}
}
