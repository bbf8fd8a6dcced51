package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "worklog"
	serviceName       = "worklog.plugin.v1.WorklogPlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodNotify      = "/" + serviceName + "/Notify"
	methodRender      = "/" + serviceName + "/Render"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "WORKLOG_PLUGIN",
	MagicCookieValue: "worklog",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type NotifyRequest struct {
	Kind   string `json:"kind"` // user | channel
	Target string `json:"target"`
	Body   string `json:"body"`
}

type NotifyResponse struct{}

type RenderRequest struct {
	LayoutJSON string `json:"layout_json"`
}

type RenderResponse struct {
	PNG []byte `json:"png"`
}

type WorklogPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error)
	Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error)
}

type WorklogPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error)
	Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error)
}

type worklogPluginClient struct {
	conn *grpc.ClientConn
}

func NewWorklogPluginClient(conn *grpc.ClientConn) WorklogPluginClient {
	return &worklogPluginClient{conn: conn}
}

func (c *worklogPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *worklogPluginClient) Notify(ctx context.Context, in *NotifyRequest) (*NotifyResponse, error) {
	out := &NotifyResponse{}
	if err := c.conn.Invoke(ctx, methodNotify, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *worklogPluginClient) Render(ctx context.Context, in *RenderRequest) (*RenderResponse, error) {
	out := &RenderResponse{}
	if err := c.conn.Invoke(ctx, methodRender, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterWorklogPluginServer(server grpc.ServiceRegistrar, impl WorklogPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*WorklogPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Notify",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &NotifyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Notify(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNotify}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*NotifyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Notify(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Render",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &RenderRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Render(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRender}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*RenderRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Render(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/plugin-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl WorklogPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterWorklogPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewWorklogPluginClient(conn), nil
}

func PluginMap(impl WorklogPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
