// Package grpc implements the gRPC transport for copilot.
//
// The service is described by hand instead of generated code: a single unary
// method, /copilot.v1.Copilot/Command, carries the command and its reply as
// google.protobuf.Struct so any gRPC client can call it without our protos.
// The standard grpc.health.v1 service is registered alongside it.
package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nadzzz/copilot/internal/config"
	"github.com/nadzzz/copilot/internal/transport"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "copilot.v1.Copilot"

	// CommandMethod is the full method path of the command RPC.
	CommandMethod = "/" + ServiceName + "/Command"
)

// commandServer is the server API of the Copilot service.
type commandServer interface {
	Command(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*commandServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Command", Handler: commandHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "copilot/v1/copilot.proto",
}

func commandHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(commandServer).Command(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CommandMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(commandServer).Command(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// service adapts a transport.Handler to the Copilot service.
type service struct {
	handler transport.Handler
}

// Command runs one command. Malformed commands fail with InvalidArgument;
// everything else, including backend outages, is an ordinary reply.
func (s *service) Command(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := req.MarshalJSON()
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encoding command: %v", err)
	}

	reply := transport.Process(ctx, s.handler, raw)
	if reply.Error != "" {
		return nil, status.Error(codes.InvalidArgument, reply.Error)
	}

	b, err := json.Marshal(reply)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding reply: %v", err)
	}
	out := new(structpb.Struct)
	if err := out.UnmarshalJSON(b); err != nil {
		return nil, status.Errorf(codes.Internal, "encoding reply: %v", err)
	}
	return out, nil
}

// Register installs the Copilot and health services on s.
func Register(s *grpc.Server, handler transport.Handler) *health.Server {
	s.RegisterService(&serviceDesc, &service{handler: handler})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return hs
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port int

	mu     sync.Mutex
	server *grpc.Server
	health *health.Server
}

// New creates a new gRPC transport.
func New(cfg config.GRPCConfig) *Transport {
	return &Transport{port: cfg.Port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary))
	hs := Register(srv, handler)

	t.mu.Lock()
	t.server, t.health = srv, hs
	t.mu.Unlock()

	slog.Info("grpc transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	return srv.Serve(lis)
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.mu.Lock()
	srv, hs := t.server, t.health
	t.mu.Unlock()
	if srv != nil {
		hs.Shutdown()
		srv.GracefulStop()
	}
	return nil
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	slog.Debug("grpc call", "method", info.FullMethod, "code", status.Code(err), "duration", time.Since(start))
	return resp, err
}
