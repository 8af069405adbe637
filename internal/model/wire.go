// Package model defines shared wire types for the gateway.
package model

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ProxyRequest represents a client request to be forwarded to the backend.
type ProxyRequest struct {
	Ctx    context.Context
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   io.ReadCloser
}

// ProxyResponse represents the backend response to be streamed back.
// Ownership of Body transfers to the caller, which must close it.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// ErrorEnvelope is the uniform body for non-2xx gateway responses.
type ErrorEnvelope struct {
	Message string `json:"message"`
}

// ErrorDetail extends ErrorEnvelope with the underlying transport error.
type ErrorDetail struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// DayRate is a single day's rate snapshot without change fields.
type DayRate struct {
	Date      string  `json:"date"`
	Gold22K   float64 `json:"gold22k"`
	Gold24K   float64 `json:"gold24k"`
	Silver    float64 `json:"silver"`
	Bitcoin   float64 `json:"bitcoin"`
	Timestamp string  `json:"timestamp"`
}

// TodayRate is the payload of GET /api/rate/today. Change fields are
// relative to Yesterday; a positive change means the price went up.
type TodayRate struct {
	Date             string  `json:"date"`
	Gold22K          float64 `json:"gold22k"`
	Gold24K          float64 `json:"gold24k"`
	Silver           float64 `json:"silver"`
	Bitcoin          float64 `json:"bitcoin"`
	Change22K        float64 `json:"change22k"`
	Change24K        float64 `json:"change24k"`
	ChangePercent22K float64 `json:"changePercent22k"`
	ChangePercent24K float64 `json:"changePercent24k"`
	Timestamp        string  `json:"timestamp"`
	Yesterday        DayRate `json:"yesterday"`
}

// HistoryEntry is a single point of GET /api/rate/history.
type HistoryEntry struct {
	Date    string  `json:"date"`
	Gold22K float64 `json:"gold22k"`
	Gold24K float64 `json:"gold24k"`
	Silver  float64 `json:"silver"`
	Bitcoin float64 `json:"bitcoin"`
}

// Trend values used by Prediction.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Prediction is the payload of GET /api/rate/predict.
type Prediction struct {
	Date         string  `json:"date"`
	Predicted22K float64 `json:"predicted22k"`
	Predicted24K float64 `json:"predicted24k"`
	Confidence   int     `json:"confidence"`
	Trend        string  `json:"trend"`
}

// Address is a shipping address as accepted by the shop endpoints.
// AddressLine2 and IsDefault are optional; all other fields are required.
type Address struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"isDefault,omitempty"`
}
