package ajax

import (
	"context"
	"errors"
	"net/http"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/compile"
	"github.com/bingLAN/chart_driver/dataset"
	"github.com/bingLAN/chart_driver/datasource"
	"github.com/bingLAN/chart_driver/logging"
	"github.com/bingLAN/chart_driver/normalize"
	"github.com/bingLAN/chart_driver/settings"
	"github.com/bingLAN/chart_driver/store"
)

// Connection request types.
const (
	ConnSave   = "save"
	ConnEdit   = "edit"
	ConnTest   = "con_test"
	ConnDelete = "delete"
)

func (d *Dispatcher) saveSettings(ctx context.Context, form Form, r *http.Request) reply {
	if !d.admitted(form, r) {
		return failure(MsgSecurity)
	}
	record := common.CommonSetting(plainValues(form.Without("action", "nonce")))
	if err := d.store.Set(ctx, common.OptionCommonSetting, record); err != nil {
		return Response{Status: false, Message: "Setting not saved.", SubMessage: err.Error()}
	}
	return Response{Status: true, Message: "Setting saved.", SubMessage: "Your settings have been saved successfully."}
}

func plainValues(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case string:
			m[k] = settings.PlainText(val)
		case map[string]any:
			m[k] = plainValues(val)
		case []any:
			for i, item := range val {
				if str, ok := item.(string); ok {
					val[i] = settings.PlainText(str)
				}
			}
		}
	}
	return m
}

func (d *Dispatcher) externalDatabase(ctx context.Context, requestID string, form Form, r *http.Request) reply {
	if !d.admitted(form, r) {
		return failure(MsgSecurity)
	}
	conn := common.DatabaseConnection{
		ConName:  form.Str("con_name"),
		Vendor:   form.Str("vendor"),
		Host:     form.Str("host"),
		Port:     form.Str("port"),
		DBName:   form.Str("db_name"),
		UserName: form.Str("user_name"),
		Pass:     form.Str("pass"),
	}

	var err error
	msg := "Connection deleted."
	switch form.Str("type") {
	case ConnSave:
		msg = "Connection saved."
		err = d.conns.CreateDatasource(ctx, conn)
	case ConnEdit:
		msg = "Connection updated."
		err = d.conns.ModifyDatasource(ctx, conn)
	case ConnTest:
		msg = "Connection successful."
		err = d.conns.CheckDatasource(ctx, conn)
	case ConnDelete:
		if name := form.Str("value"); name != "" {
			err = d.conns.DelDatasource(ctx, name)
		}
	default:
		return failure("no_action")
	}
	if err != nil {
		logging.NewEvent(d.logger.Warn()).
			Add(logging.RequestID(requestID)).
			Add(logging.Connection(conn.ConName)).
			Add(logging.ErrorField(err)).
			Msg("database connection request failed")
		return failure(connectionMessage(err))
	}
	return Response{Status: true, Message: msg}
}

func connectionMessage(err error) string {
	switch {
	case errors.Is(err, datasource.ErrInvalidConnection):
		return "Please fill in host, user name, password, database name and connection name."
	case errors.Is(err, datasource.ErrExists):
		return "A connection with this name already exists."
	case errors.Is(err, datasource.ErrNotExists):
		return "No connection with this name exists."
	case errors.Is(err, context.DeadlineExceeded):
		return "Connection timed out."
	}
	return err.Error()
}

// resolve returns the widget settings, or nil when neither the request nor
// the stored document carries them. Only authorized callers may name their
// own data sources.
func (d *Dispatcher) resolve(ctx context.Context, form Form, r *http.Request) *settings.Bag {
	t := catalog.ParseChartType(form.Str("chart_type"))
	if d.admin.Authorized(r) {
		return d.resolver.Resolve(ctx, t, form.Map("fields"), form.Str("chart_id"))
	}
	return d.resolver.ResolvePublic(ctx, t, form.Map("fields"), form.Str("chart_id"))
}

func (d *Dispatcher) numberFormat(ctx context.Context) normalize.NumberFormat {
	var record common.CommonSetting
	if err := store.GetOr(ctx, d.store, common.OptionCommonSetting, &record); err != nil {
		return normalize.DefaultNumberFormat()
	}
	return normalize.FormatFromSettings(record)
}

func (d *Dispatcher) chartSettings(ctx context.Context, requestID string, form Form, r *http.Request) reply {
	if !d.nonces.Verify(form.Str("nonce"), NonceChart) {
		return failure(MsgSecurity)
	}
	chartID := form.Str("chart_id")

	bag := d.resolve(ctx, form, r)
	data := &common.ChartData{Series: []common.Series{}, Category: []string{}}
	if bag == nil {
		bag = settings.NewBag(catalog.ParseChartType(form.Str("chart_type")), nil)
	} else {
		data = d.normalizer.Normalize(ctx, normalize.Request{
			Settings: bag,
			Filter:   form.Str("selected_field"),
			Format:   d.numberFormat(ctx),
		})
	}
	if data.Fail {
		logging.NewEvent(d.logger.Warn()).
			Add(logging.RequestID(requestID)).
			Add(logging.ChartType(bag.Type.String())).
			Add(logging.ChartID(chartID)).
			Add(logging.Provider(dataset.ProviderKey(bag))).
			Add(logging.Str("fail_message", data.FailMessage)).
			Msg("chart data source failed")
	}

	filter := bag.DataOption() != catalog.DataManual && bag.Bool("chart_filter_enable")
	google := data.Google
	if google == nil {
		google = &common.GoogleData{TitleArray: []string{}, Data: [][]interface{}{}}
	}
	return ChartResponse{
		Status:          true,
		InstantInit:     filter || data.MaxPoints() <= catalog.AnimationPointLimit,
		Fail:            data.Fail,
		FailMessage:     data.FailMessage,
		ChartID:         chartID,
		ChartOption:     compile.Compile(bag, data),
		FilterEnable:    filter,
		GoogleChartData: google,
		CategoryCount:   len(data.Category),
		Extra:           data,
	}
}

func (d *Dispatcher) datatable(ctx context.Context, form Form, r *http.Request) reply {
	if !d.nonces.Verify(form.Str("nonce"), NonceDatatable) {
		return failure(MsgSecurity)
	}
	bag := d.resolve(ctx, form, r)
	if bag == nil {
		return Response{Status: false}
	}
	data := d.normalizer.Datatable(ctx, normalize.Request{Settings: bag, Filter: form.Str("selected_field")})
	if data.Fail {
		return failure(data.FailMessage)
	}
	if normalize.HeaderEmpty(data.Table) {
		return Response{Status: false}
	}
	return Response{Status: true, Data: data.Table}
}

// password unlocks a restricted widget. The hash is read from the stored
// element, never from the request.
func (d *Dispatcher) password(ctx context.Context, form Form) reply {
	if !d.nonces.Verify(form.Str("nonce"), NoncePassword) {
		return failure(MsgSecurity)
	}
	var hash string
	t := catalog.ParseChartType(form.Str("chart_type"))
	if bag := d.resolver.ResolvePublic(ctx, t, nil, form.Str("chart_id")); bag != nil {
		hash = bag.Str("restriction_content_password")
	}
	if !d.passwords.Check(hash, form.Str("graphina_password")) {
		return failure("Invalid password.")
	}
	return Response{Status: true, Chart: form.Str("chart_type") + "_" + form.Str("chart_id")}
}
