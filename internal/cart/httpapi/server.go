package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dwikikusuma/shopping-cart/internal/cart/app"
	"github.com/dwikikusuma/shopping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shopping-cart/pkg/httperr"
	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxBodyBytes = 1 << 20

type Server struct {
	svc *app.Service
	log *slog.Logger
}

func NewServer(svc *app.Service, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, tracePropagation, s.accessLog)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/stats", s.Stats).Methods(http.MethodGet)
	v1.HandleFunc("/carts/{customerID}", s.GetCart).Methods(http.MethodGet)
	v1.HandleFunc("/carts/{customerID}", s.GetOrCreateCart).Methods(http.MethodPut)
	v1.HandleFunc("/carts/{customerID}", s.InvalidateCart).Methods(http.MethodDelete)
	v1.HandleFunc("/carts/{customerID}/items", s.AddItem).Methods(http.MethodPost)
	v1.HandleFunc("/carts/{customerID}/items/{code}", s.RemoveItem).Methods(http.MethodDelete)
	v1.HandleFunc("/carts/{customerID}/positions/{position}", s.RemoveItemAt).Methods(http.MethodDelete)
	v1.HandleFunc("/carts/{customerID}/checkout", s.Checkout).Methods(http.MethodPost)

	return r
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.svc.GetCart(r.Context(), mux.Vars(r)["customerID"])
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(cart))
}

func (s *Server) GetOrCreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.svc.GetOrCreate(r.Context(), mux.Vars(r)["customerID"])
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(cart))
}

func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErr(w, r, status.Errorf(codes.InvalidArgument, "malformed body: %v", err))
		return
	}
	if req.Code == nil {
		s.writeErr(w, r, domain.ErrInvalidProduct)
		return
	}
	if req.UnitPrice == nil {
		s.writeErr(w, r, status.Error(codes.InvalidArgument, "unit_price is required"))
		return
	}

	cart, err := s.svc.AddItem(r.Context(), mux.Vars(r)["customerID"], app.AddItemInput{
		Code:        *req.Code,
		Description: req.Description,
		UnitPrice:   *req.UnitPrice,
		Quantity:    req.Quantity,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(cart))
}

func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code, err := strconv.ParseInt(vars["code"], 10, 64)
	if err != nil {
		s.writeErr(w, r, status.Errorf(codes.InvalidArgument, "invalid product code %q", vars["code"]))
		return
	}

	cart, removed, err := s.svc.RemoveItem(r.Context(), vars["customerID"], code)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removeResponse{Removed: removed, Cart: toResponse(cart)})
}

func (s *Server) RemoveItemAt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	position, err := strconv.Atoi(vars["position"])
	if err != nil {
		s.writeErr(w, r, status.Errorf(codes.InvalidArgument, "invalid position %q", vars["position"]))
		return
	}

	cart, removed, err := s.svc.RemoveItemAt(r.Context(), vars["customerID"], position)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removeResponse{Removed: removed, Cart: toResponse(cart)})
}

func (s *Server) Checkout(w http.ResponseWriter, r *http.Request) {
	cart, err := s.svc.Checkout(r.Context(), mux.Vars(r)["customerID"])
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(cart))
}

func (s *Server) InvalidateCart(w http.ResponseWriter, r *http.Request) {
	ok, err := s.svc.Invalidate(r.Context(), mux.Vars(r)["customerID"])
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invalidateResponse{Invalidated: ok})
}

func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	mapped := mapErr(err)
	if status.Code(mapped) == codes.Internal {
		s.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	}
	httperr.Write(w, mapped)
}

func mapErr(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrNegativeUnitPrice),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrQuantityOverflow):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrCartNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, fmt.Sprintf("internal error: %v", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
