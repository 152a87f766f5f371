package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"omnikassa/config"
	"omnikassa/entity"
	"omnikassa/services"
)

const (
	paymentRequest = "/request"
	paymentNotify  = "/notify"
	paymentReturn  = "/return"
	paymentResult  = "/result/:reference"
	metricsPath    = "/metrics"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	payments   services.Payments
	logger     services.LogHandler
	metrics    *Metrics
}

// ReturnResult is the JSON answer to a verified browser return.
type ReturnResult struct {
	OrderId              string `json:"order_id"`
	TransactionReference string `json:"transaction_reference"`
	Amount               string `json:"amount"`
	ResponseCode         int    `json:"response_code"`
	Message              string `json:"message"`
	Success              bool   `json:"success"`
	Pending              bool   `json:"pending"`
}

func NewServer(conf *config.Config, metrics *Metrics) *Server {

	server := Server{
		conf:    conf,
		metrics: metrics,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(paymentRequest, s.paymentRequest)
	router.POST(paymentNotify, s.paymentNotify)
	router.POST(paymentReturn, s.paymentReturn)
	router.GET(paymentResult, s.paymentResult)
	if s.metrics != nil {
		router.Handler(http.MethodGet, metricsPath, promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) paymentRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment request: read body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var orderRequest entity.OrderRequest
	if err = json.Unmarshal(body, &orderRequest); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] payment request: decode body: %v", reqID, err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err = orderRequest.Validate(); err != nil {
		s.writeError(w, reqID, "payment request", err)
		return
	}
	order, err := orderRequest.Order()
	if err != nil {
		s.writeError(w, reqID, "payment request", err)
		return
	}

	request, err := s.payments.NewRequest(ctx, order, orderRequest.Options())
	if err != nil {
		s.writeError(w, reqID, "payment request", err)
		return
	}
	s.writeJson(w, reqID, request)
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: get body", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err = s.payments.Notify(ctx, body); err != nil {
		s.writeError(w, reqID, "payment notify", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) paymentReturn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment return: get body", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response, err := s.payments.Return(ctx, body)
	if err != nil {
		s.writeError(w, reqID, "payment return", err)
		return
	}
	result := ReturnResult{
		Amount:       response.Amount,
		ResponseCode: int(response.ResponseCode),
		Message:      response.Message(),
		Success:      response.ResponseCode.IsSuccess(),
		Pending:      response.ResponseCode.IsPending(),
	}
	if response.HasOrder() {
		result.OrderId = response.Order.OrderId()
		result.TransactionReference = response.Order.TransactionReference()
	}
	s.writeJson(w, reqID, result)
}

func (s *Server) paymentResult(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	result, err := s.payments.Result(ctx, ps.ByName("reference"))
	if err != nil {
		s.writeError(w, reqID, "payment result", err)
		return
	}
	s.writeJson(w, reqID, result)
}

func (s *Server) writeJson(w http.ResponseWriter, reqID string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] encode response", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] write response", reqID), err)
	}
}

// writeError answers 404 for unknown records, 400 for errors the caller can
// fix or must not retry and 500 for everything else.
func (s *Server) writeError(w http.ResponseWriter, reqID string, operation string, err error) {
	status := http.StatusInternalServerError
	var validationErr *entity.ValidationError
	var missingErr *entity.MissingFieldError
	var integrityErr *entity.IntegrityError
	var notImplementedErr *entity.NotImplementedError
	var notFoundErr *entity.NotFoundError
	switch {
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		s.logger.Debug(fmt.Sprintf("[%s] %s: %v", reqID, operation, err))
	case errors.As(err, &integrityErr):
		status = http.StatusBadRequest
		s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, operation, err))
	case errors.As(err, &validationErr), errors.As(err, &missingErr), errors.As(err, &notImplementedErr):
		status = http.StatusBadRequest
		s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, operation, err))
	default:
		s.logger.Error(fmt.Sprintf("[%s] %s", reqID, operation), err)
	}
	http.Error(w, err.Error(), status)
}
