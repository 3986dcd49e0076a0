package ajax

import (
	"net/http"

	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/compile"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the reply of every action except the chart settings fetch.
type Response struct {
	Status         bool        `json:"status"`
	Message        string      `json:"message,omitempty"`
	SubMessage     string      `json:"sub_message,omitempty"`
	ErrorException string      `json:"error_exception,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Chart          string      `json:"chart,omitempty"`
}

// ChartResponse is the chart settings envelope. Its shape is fixed for
// client compatibility.
type ChartResponse struct {
	Status          bool               `json:"status"`
	InstantInit     bool               `json:"instant_init"`
	Fail            bool               `json:"fail"`
	FailMessage     string             `json:"fail_message"`
	ChartID         string             `json:"chart_id"`
	ChartOption     compile.Options    `json:"chart_option"`
	FilterEnable    bool               `json:"filter_enable"`
	GoogleChartData *common.GoogleData `json:"googlechartData"`
	CategoryCount   int                `json:"category_count"`
	Extra           *common.ChartData  `json:"extra"`
}

type reply interface {
	ok() bool
}

func (r Response) ok() bool {
	return r.Status
}

func (r ChartResponse) ok() bool {
	return r.Status
}

func failure(msg string) Response {
	return Response{Status: false, Message: msg}
}

// writeJSON always answers 200; success travels in the status field.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
