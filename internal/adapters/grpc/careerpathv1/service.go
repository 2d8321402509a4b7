// Package careerpathv1 は careerpath.v1.CareerPathService の gRPC サービス定義です。
// メッセージには google.protobuf.Struct を用い、フィールド名は HTTP API の JSON と揃えています。
package careerpathv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "careerpath.v1.CareerPathService"

	ListEmployeesFullMethodName  = "/" + ServiceName + "/ListEmployees"
	GetEmployeeFullMethodName    = "/" + ServiceName + "/GetEmployee"
	CreateEmployeeFullMethodName = "/" + ServiceName + "/CreateEmployee"
	ListRolesFullMethodName      = "/" + ServiceName + "/ListRoles"
)

// CareerPathServiceServer はサーバー側の実装が満たすインターフェースです。
type CareerPathServiceServer interface {
	ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRoles(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCareerPathServiceServer はサービスを gRPC サーバーに登録します。
func RegisterCareerPathServiceServer(s grpc.ServiceRegistrar, srv CareerPathServiceServer) {
	s.RegisterService(&CareerPathService_ServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(CareerPathServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CareerPathServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CareerPathServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CareerPathService_ServiceDesc は CareerPathService の grpc.ServiceDesc です。
var CareerPathService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CareerPathServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListEmployees",
			Handler: unaryHandler(ListEmployeesFullMethodName, func(s CareerPathServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.ListEmployees(ctx, in)
			}),
		},
		{
			MethodName: "GetEmployee",
			Handler: unaryHandler(GetEmployeeFullMethodName, func(s CareerPathServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GetEmployee(ctx, in)
			}),
		},
		{
			MethodName: "CreateEmployee",
			Handler: unaryHandler(CreateEmployeeFullMethodName, func(s CareerPathServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.CreateEmployee(ctx, in)
			}),
		},
		{
			MethodName: "ListRoles",
			Handler: unaryHandler(ListRolesFullMethodName, func(s CareerPathServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.ListRoles(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// CareerPathServiceClient は CareerPathService のクライアントです。
type CareerPathServiceClient interface {
	ListEmployees(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListRoles(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type careerPathServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCareerPathServiceClient はクライアントを生成します。
func NewCareerPathServiceClient(cc grpc.ClientConnInterface) CareerPathServiceClient {
	return &careerPathServiceClient{cc: cc}
}

func (c *careerPathServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *careerPathServiceClient) ListEmployees(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListEmployeesFullMethodName, in, opts...)
}

func (c *careerPathServiceClient) GetEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetEmployeeFullMethodName, in, opts...)
}

func (c *careerPathServiceClient) CreateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CreateEmployeeFullMethodName, in, opts...)
}

func (c *careerPathServiceClient) ListRoles(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListRolesFullMethodName, in, opts...)
}
