package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"voucher-segments/pkg/logger"
	"voucher-segments/pkg/lookup"
	"voucher-segments/pkg/models"
	"voucher-segments/pkg/segment"
)

// customerID accepts the id as a JSON number or a JSON string; clients send
// both shapes.
type customerID string

func (c *customerID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*c = customerID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("customer_id must be a string or a number")
	}
	*c = customerID(s)
	return nil
}

// customerPayload is the wire shape of the `customer` query parameter, an
// URL-encoded JSON object. Pointers distinguish missing fields from zero
// values; every field is required.
type customerPayload struct {
	CustomerID   *customerID `json:"customer_id"`
	CountryCode  *string     `json:"country_code"`
	SegmentName  *string     `json:"segment_name"`
	TotalOrders  *int        `json:"total_orders"`
	LastOrderTS  *string     `json:"last_order_ts"`
	FirstOrderTS *string     `json:"first_order_ts"`
}

func (p *customerPayload) toQuery() (models.CustomerQuery, error) {
	if p.CustomerID == nil || p.CountryCode == nil || p.SegmentName == nil ||
		p.TotalOrders == nil || p.LastOrderTS == nil || p.FirstOrderTS == nil {
		return models.CustomerQuery{}, fmt.Errorf("%w: missing field in customer object", segment.ErrInvalidInput)
	}
	lastOrder, err := time.ParseInLocation(models.TimestampLayout, *p.LastOrderTS, time.UTC)
	if err != nil {
		return models.CustomerQuery{}, fmt.Errorf("%w: last_order_ts: %v", segment.ErrInvalidInput, err)
	}
	firstOrder, err := time.ParseInLocation(models.TimestampLayout, *p.FirstOrderTS, time.UTC)
	if err != nil {
		return models.CustomerQuery{}, fmt.Errorf("%w: first_order_ts: %v", segment.ErrInvalidInput, err)
	}
	return models.CustomerQuery{
		CustomerID:   string(*p.CustomerID),
		CountryCode:  *p.CountryCode,
		SegmentName:  *p.SegmentName,
		TotalOrders:  *p.TotalOrders,
		LastOrderTS:  lastOrder,
		FirstOrderTS: firstOrder,
	}, nil
}

type voucherResponse struct {
	VoucherAmount *int64 `json:"voucher_amount"`
}

func newMux(svc *lookup.Service, log *logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Hello":"World!!"}`)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("/voucher/most-used", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r)

		// The query parameter arrives URL-decoded from the mux.
		raw := r.URL.Query().Get("customer")
		if raw == "" {
			reqLog.Warn("missing customer parameter")
			http.Error(w, "missing customer parameter", http.StatusBadRequest)
			return
		}
		var payload customerPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			reqLog.WithError(err).Warn("malformed customer object")
			http.Error(w, "malformed customer object", http.StatusBadRequest)
			return
		}
		query, err := payload.toQuery()
		if err != nil {
			reqLog.WithError(err).Warn("invalid customer object")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		amount, found, err := svc.Lookup(r.Context(), query)
		if err != nil {
			if errors.Is(err, segment.ErrInvalidInput) {
				reqLog.WithError(err).Warn("invalid lookup input")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			reqLog.WithError(err).Error("lookup failed")
			http.Error(w, "lookup failed", http.StatusInternalServerError)
			return
		}

		resp := voucherResponse{}
		if found {
			resp.VoucherAmount = &amount
		}
		reqLog.WithField("country_code", query.CountryCode).
			WithField("segment_name", query.SegmentName).
			WithField("found", found).
			Info("lookup served")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
	})

	return mux
}
