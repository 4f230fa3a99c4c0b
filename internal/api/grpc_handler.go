package api

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"bitary-listing-service/internal/service"
)

// ListingServiceName is the fully qualified gRPC service name. Messages
// are google.protobuf.Struct so clients need no generated stubs.
const ListingServiceName = "bitary.listing.v1.ListingService"

const (
	listShopProductsMethod = "/" + ListingServiceName + "/ListShopProducts"
	listClinicsMethod      = "/" + ListingServiceName + "/ListClinics"
)

// ListingServer is the server API for the listing service.
type ListingServer interface {
	ListShopProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListClinics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// GRPCHandler implements ListingServer over the browse use cases.
type GRPCHandler struct {
	shop    ShopBrowser
	clinics ClinicBrowser
	logger  *zap.Logger
}

// NewGRPCHandler creates a new GRPCHandler.
func NewGRPCHandler(shop ShopBrowser, clinics ClinicBrowser, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{shop: shop, clinics: clinics, logger: logger}
}

// RegisterListingServer registers srv on s.
func RegisterListingServer(s grpc.ServiceRegistrar, srv ListingServer) {
	s.RegisterService(&listingServiceDesc, srv)
}

// --- Helper: Error Mapping ---
func (h *GRPCHandler) mapServiceErrorToGrpcStatus(err error, method string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrUpstream):
		h.logger.Warn("upstream failure", zap.String("method", method), zap.Error(err))
		if service.IsRetryable(err) {
			return status.Error(codes.Unavailable, "listing source unavailable, retry the request")
		}
		return status.Errorf(codes.Internal, "failed to load listing for %s", method)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		h.logger.Error("unhandled service error", zap.String("method", method), zap.Error(err))
		return status.Errorf(codes.Internal, "failed to process %s", method)
	}
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

// toStruct converts a JSON-tagged response into a Struct, so gRPC and
// HTTP clients see the same field names.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// --- ListingServer Implementation ---

func (h *GRPCHandler) ListShopProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q := service.ShopQuery{
		Search:   stringField(req, "q"),
		Category: stringField(req, "category"),
		Sort:     stringField(req, "sort"),
		Page:     int(req.GetFields()["page"].GetNumberValue()),
	}
	h.logger.Debug("gRPC ListShopProducts", zap.String("category", q.Category), zap.Int("page", q.Page))

	result, err := h.shop.Browse(ctx, q)
	if err != nil {
		return nil, h.mapServiceErrorToGrpcStatus(err, "ListShopProducts")
	}
	return toStruct(ShopListResponse{
		Data:       nonNil(result.Products),
		Categories: nonNil(result.Categories),
		Pagination: PaginationInfo{
			Page:       result.Page.Page,
			Limit:      result.Page.PageSize,
			TotalItems: result.Page.TotalItems,
			TotalPages: result.Page.TotalPages,
		},
	})
}

func (h *GRPCHandler) ListClinics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q := service.ClinicQuery{
		Search:   stringField(req, "search"),
		Location: stringField(req, "location"),
		Tag:      stringField(req, "tag"),
		Sort:     stringField(req, "sort"),
	}
	h.logger.Debug("gRPC ListClinics", zap.String("tag", q.Tag), zap.String("sort", q.Sort))

	result, err := h.clinics.Browse(ctx, q)
	if err != nil {
		return nil, h.mapServiceErrorToGrpcStatus(err, "ListClinics")
	}
	return toStruct(ClinicListResponse{
		Data:    nonNil(result.Clinics),
		Count:   result.Count,
		Summary: result.Summary,
	})
}

// --- Service descriptor ---

func listShopProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ListingServer).ListShopProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listShopProductsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ListingServer).ListShopProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listClinicsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ListingServer).ListClinics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listClinicsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ListingServer).ListClinics(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var listingServiceDesc = grpc.ServiceDesc{
	ServiceName: ListingServiceName,
	HandlerType: (*ListingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListShopProducts", Handler: listShopProductsHandler},
		{MethodName: "ListClinics", Handler: listClinicsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bitary/listing/v1/listing.proto",
}

// LoggingInterceptor logs every unary call with its status code.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		logger.Info("gRPC call", zap.String("method", info.FullMethod), zap.String("code", status.Code(err).String()))
		return resp, err
	}
}
