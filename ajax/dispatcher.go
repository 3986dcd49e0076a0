// Package ajax serves the chart AJAX protocol: settings save, external
// database connections, chart settings, datatable data and the password
// gate.
package ajax

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/logging"
	"github.com/bingLAN/chart_driver/normalize"
	"github.com/bingLAN/chart_driver/settings"
	"github.com/bingLAN/chart_driver/store"
	"github.com/felixgeelhaar/bolt/v3"
)

// Actions.
const (
	ActionSaveSettings     = "graphina_setting_data"
	ActionExternalDatabase = "graphina_external_database"
	ActionChartSettings    = "get_graphina_chart_settings"
	ActionDatatable        = "get_jquery_datatable_data"
	ActionPassword         = "graphina_restrict_password_ajax"
)

// MsgSecurity answers requests failing the capability or nonce check.
const MsgSecurity = "Permission denied or security check failed."

// Connections manages the external database connections.
type Connections interface {
	CheckDatasource(ctx context.Context, conn common.DatabaseConnection) error
	CreateDatasource(ctx context.Context, conn common.DatabaseConnection) error
	ModifyDatasource(ctx context.Context, conn common.DatabaseConnection) error
	DelDatasource(ctx context.Context, name string) error
}

type Option func(*Dispatcher)

func WithAuthorizer(a Authorizer) Option {
	return func(d *Dispatcher) {
		d.admin = a
	}
}

func WithPasswordChecker(p PasswordChecker) Option {
	return func(d *Dispatcher) {
		d.passwords = p
	}
}

func WithLogger(l *bolt.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// Dispatcher routes AJAX requests by their action field. It holds no per
// request state.
type Dispatcher struct {
	store      store.Store
	conns      Connections
	resolver   *settings.Resolver
	normalizer *normalize.Normalizer
	nonces     *NonceManager
	admin      Authorizer
	passwords  PasswordChecker
	logger     *bolt.Logger
}

func NewDispatcher(s store.Store, conns Connections, r *settings.Resolver, n *normalize.Normalizer,
	nonces *NonceManager, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:      s,
		conns:      conns,
		resolver:   r,
		normalizer: n,
		nonces:     nonces,
		admin:      TokenAuthorizer{},
		passwords:  BcryptChecker{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logging.Get()
	}
	return d
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := common.GetUUID()

	form, err := ParseForm(w, r)
	if err != nil {
		writeJSON(w, failure("malformed request"))
		logging.NewEvent(d.logger.Warn()).
			Add(logging.RequestID(requestID)).
			Add(logging.ErrorField(err)).
			Msg("ajax request rejected")
		return
	}
	action := form.Str("action")
	if action == "" {
		action = r.URL.Query().Get("action")
	}

	res := d.dispatch(r.Context(), requestID, action, form, r)
	writeJSON(w, res)

	logging.NewEvent(d.logger.Info()).
		Add(logging.RequestID(requestID)).
		Add(logging.Action(action)).
		Add(logging.Status(res.ok())).
		Add(logging.Duration(time.Since(start))).
		Msg("ajax request")
}

// dispatch runs one action. A panic in any handler becomes an
// error_exception reply for this request only.
func (d *Dispatcher) dispatch(ctx context.Context, requestID, action string, form Form, r *http.Request) (res reply) {
	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprint(rec)
			logging.NewEvent(d.logger.Error()).
				Add(logging.RequestID(requestID)).
				Add(logging.Action(action)).
				Add(logging.Str("panic", msg)).
				Msg("ajax handler panicked")
			res = Response{Status: false, ErrorException: msg}
		}
	}()

	switch action {
	case ActionSaveSettings:
		return d.saveSettings(ctx, form, r)
	case ActionExternalDatabase:
		return d.externalDatabase(ctx, requestID, form, r)
	case ActionChartSettings:
		return d.chartSettings(ctx, requestID, form, r)
	case ActionDatatable:
		return d.datatable(ctx, form, r)
	case ActionPassword:
		return d.password(ctx, form)
	}
	return failure("unknown action")
}

// admitted checks the capability and the ajax nonce of admin actions.
func (d *Dispatcher) admitted(form Form, r *http.Request) bool {
	return d.admin.Authorized(r) && d.nonces.Verify(form.Str("nonce"), NonceAjax)
}
