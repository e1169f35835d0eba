package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/notify"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/tendermint/tendermint/libs/log"
)

// Server serves the read API.
type Server struct {
	view     bankaccount.View
	events   *notify.PubSub
	logger   log.Logger
	decimals int32
	router   chi.Router
}

var _ http.Handler = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithEvents enables the event stream endpoint.
func WithEvents(ps *notify.PubSub) Option {
	return func(s *Server) { s.events = ps }
}

// WithLogger sets the logger used for requests and internal errors.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithDecimals sets the number of fractional digits amounts are rendered
// with.
func WithDecimals(n int32) Option {
	return func(s *Server) { s.decimals = n }
}

// NewServer returns a handler answering queries from given view.
func NewServer(view bankaccount.View, opts ...Option) *Server {
	s := &Server{
		view:     view,
		logger:   log.NewNopLogger(),
		decimals: DefaultDecimals,
	}
	for _, fn := range opts {
		fn(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/accounts/{accountID}", func(r chi.Router) {
		r.Get("/", s.account)
		r.Get("/owners", s.owners)
		r.Get("/balance", s.balance)
		r.Get("/withdrawals", s.withdrawals)
		r.Get("/withdrawals/{withdrawID}", s.withdrawal)
		r.Get("/withdrawals/{withdrawID}/approvals", s.approvals)
	})
	r.Get("/participants/{address}/accounts", s.participantAccounts)
	if s.events != nil {
		r.Get("/events", s.streamEvents)
	}
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start).Seconds()*1000,
		)
	})
}

// AccountView is the JSON representation of an account.
type AccountView struct {
	ID          uint64              `json:"id"`
	Owners      []jointbank.Address `json:"owners"`
	Balance     Amount              `json:"balance"`
	Withdrawals uint64              `json:"withdrawals"`
	Required    int                 `json:"required_approvals"`
	CreatedAt   time.Time           `json:"created_at"`
}

// WithdrawalView is the JSON representation of a withdrawal request.
type WithdrawalView struct {
	AccountID  uint64              `json:"account_id"`
	ID         uint64              `json:"id"`
	Amount     Amount              `json:"amount"`
	Requester  jointbank.Address   `json:"requester"`
	Approvals  []jointbank.Address `json:"approvals"`
	Executed   bool                `json:"executed"`
	CreatedAt  time.Time           `json:"created_at"`
	ExecutedAt *time.Time          `json:"executed_at,omitempty"`
}

func (s *Server) account(w http.ResponseWriter, r *http.Request) {
	id, ok := s.accountID(w, r)
	if !ok {
		return
	}
	acc, required, err := s.view.AccountQuorum(id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	JSONResp(w, s.logger, http.StatusOK, AccountView{
		ID:          acc.ID,
		Owners:      acc.Owners,
		Balance:     NewAmount(acc.Balance, s.decimals),
		Withdrawals: acc.NextWithdrawID,
		Required:    required,
		CreatedAt:   time.Unix(acc.CreatedAt, 0).UTC(),
	})
}

func (s *Server) owners(w http.ResponseWriter, r *http.Request) {
	id, ok := s.accountID(w, r)
	if !ok {
		return
	}
	owners, err := s.view.Owners(id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	JSONResp(w, s.logger, http.StatusOK, struct {
		Owners []jointbank.Address `json:"owners"`
	}{
		Owners: owners,
	})
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	id, ok := s.accountID(w, r)
	if !ok {
		return
	}
	balance, err := s.view.Balance(id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	JSONResp(w, s.logger, http.StatusOK, struct {
		Balance Amount `json:"balance"`
	}{
		Balance: NewAmount(balance, s.decimals),
	})
}

func (s *Server) withdrawals(w http.ResponseWriter, r *http.Request) {
	id, ok := s.accountID(w, r)
	if !ok {
		return
	}
	reqs, err := s.view.Withdrawals(id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	objects := make([]WithdrawalView, 0, len(reqs))
	for _, req := range reqs {
		objects = append(objects, s.withdrawalView(req))
	}
	JSONResp(w, s.logger, http.StatusOK, struct {
		Objects []WithdrawalView `json:"objects"`
	}{
		Objects: objects,
	})
}

func (s *Server) withdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := s.accountID(w, r)
	if !ok {
		return
	}
	wid, ok := s.withdrawID(w, r)
	if !ok {
		return
	}
	req, err := s.view.Withdrawal(id, wid)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	JSONResp(w, s.logger, http.StatusOK, s.withdrawalView(req))
}

func (s *Server) approvals(w http.ResponseWriter, r *http.Request) {
	id, ok := s.accountID(w, r)
	if !ok {
		return
	}
	wid, ok := s.withdrawID(w, r)
	if !ok {
		return
	}
	req, required, err := s.view.WithdrawalQuorum(id, wid)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	n := len(req.Approvals)
	JSONResp(w, s.logger, http.StatusOK, struct {
		Approvals int  `json:"approvals"`
		Required  int  `json:"required"`
		Approved  bool `json:"approved"`
	}{
		Approvals: n,
		Required:  required,
		Approved:  n >= required,
	})
}

func (s *Server) participantAccounts(w http.ResponseWriter, r *http.Request) {
	addr, err := jointbank.ParseAddress(chi.URLParam(r, "address"))
	if err == nil {
		err = addr.Validate()
	}
	if err != nil {
		JSONErr(w, s.logger, http.StatusBadRequest, "address must be a valid address value.")
		return
	}
	ids, err := s.view.Accounts(addr)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if ids == nil {
		ids = []uint64{}
	}
	JSONResp(w, s.logger, http.StatusOK, struct {
		Accounts []uint64 `json:"accounts"`
	}{
		Accounts: ids,
	})
}

func (s *Server) withdrawalView(req *bankaccount.WithdrawalRequest) WithdrawalView {
	v := WithdrawalView{
		AccountID: req.AccountID,
		ID:        req.ID,
		Amount:    NewAmount(req.Amount, s.decimals),
		Requester: req.Requester,
		Approvals: req.Approvals,
		Executed:  req.Executed,
		CreatedAt: time.Unix(req.CreatedAt, 0).UTC(),
	}
	if req.Executed {
		t := time.Unix(req.ExecutedAt, 0).UTC()
		v.ExecutedAt = &t
	}
	return v
}

func (s *Server) accountID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	return s.uintParam(w, r, "accountID")
}

func (s *Server) withdrawID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	return s.uintParam(w, r, "withdrawID")
}

func (s *Server) uintParam(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, s.logger, errors.Wrapf(errors.ErrInput, "%s must be an unsigned integer", name))
		return 0, false
	}
	return n, true
}
