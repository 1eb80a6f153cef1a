// Package grpc_model serves a model.Model over gRPC and consumes one.
//
// The service carries a single unary method, labelling.EntityModel/Annotate.
// Both request and response are google.protobuf.Struct values: the request is
// {"text": "..."} and the response is a model.Document in its JSON shape.
package grpc_model

import (
	"context"
	"encoding/json"
	"fmt"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName    = "labelling.EntityModel"
	AnnotateMethod = "/labelling.EntityModel/Annotate"
)

type EntityModelServer interface {
	Annotate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func annotateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EntityModelServer).Annotate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnnotateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EntityModelServer).Annotate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EntityModelServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Annotate",
			Handler:    annotateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "labelling.proto",
}

// Register exposes m on s.
func Register(s *grpc.Server, m model.Model) {
	s.RegisterService(&ServiceDesc, &server{model: m})
}

type server struct {
	model model.Model
}

func (s *server) Annotate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	v, ok := in.GetFields()["text"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing text")
	}
	txt, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "text must be a string")
	}

	doc, err := s.model.Annotate(ctx, txt.StringValue)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(doc)
}

// Client is a model.Model backed by a remote EntityModel service.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial connects to an EntityModel server without transport security.
func Dial(addr string) (*Client, *grpc.ClientConn, error) {
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return NewClient(conn), conn, nil
}

func (c *Client) Annotate(ctx context.Context, text string) (*model.Document, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"text": text})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, AnnotateMethod, in, out); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", model.ErrModelUnavailable, err)
	}

	doc, err := fromStruct(out)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", model.ErrModelUnavailable, err)
	}
	return doc, nil
}

func toStruct(doc *model.Document) (*structpb.Struct, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	st := new(structpb.Struct)
	if err := protojson.Unmarshal(b, st); err != nil {
		return nil, err
	}
	return st, nil
}

func fromStruct(st *structpb.Struct) (*model.Document, error) {
	b, err := protojson.Marshal(st)
	if err != nil {
		return nil, err
	}
	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
