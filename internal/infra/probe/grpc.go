package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCProbe checks a gRPC dependency via the standard health service.
type GRPCProbe struct {
	name   string
	conn   *grpc.ClientConn
	health grpc_health_v1.HealthClient
}

// NewGRPCProbe creates a gRPC prober. The connection is lazy; dialing
// happens on the first probe.
func NewGRPCProbe(name, endpoint string) (*GRPCProbe, error) {
	// Parse endpoint to determine if TLS is needed
	target := endpoint
	var opts []grpc.DialOption

	if strings.HasPrefix(endpoint, "https://") || strings.HasSuffix(endpoint, ":443") {
		creds := credentials.NewTLS(&tls.Config{})
		opts = append(opts, grpc.WithTransportCredentials(creds))
		target = strings.TrimPrefix(target, "https://")
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		target = strings.TrimPrefix(target, "http://")
	}

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", target, err)
	}

	return &GRPCProbe{
		name:   name,
		conn:   conn,
		health: grpc_health_v1.NewHealthClient(conn),
	}, nil
}

func (p *GRPCProbe) Name() string { return p.name }

func (p *GRPCProbe) Probe(ctx context.Context) error {
	resp, err := p.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return classify(p.name, err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return classify(p.name, fmt.Errorf("health status %s", resp.GetStatus()))
	}
	return nil
}

// Close closes the gRPC connection.
func (p *GRPCProbe) Close() error {
	return p.conn.Close()
}
