// Package number contains the HTTP handler for GET /api/classify-number.
//
// Like the other handler packages it uses the factory pattern: Classify
// receives its dependencies once at startup and returns the
// http.HandlerFunc the router calls on every request.
package number

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/number-classifier/internal/classify"
	"github.com/aanand-mishra/number-classifier/internal/funfact"
	"github.com/aanand-mishra/number-classifier/internal/metrics"
	"github.com/aanand-mishra/number-classifier/internal/storage"
	"github.com/aanand-mishra/number-classifier/internal/types"
	"github.com/aanand-mishra/number-classifier/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Classify handles GET /api/classify-number?number=<token>
//
// Success response (200 OK):
//
//	{
//	  "number": 371, "is_prime": false, "is_perfect": false,
//	  "properties": ["armstrong", "odd"], "digit_sum": 11,
//	  "fun_fact": "371 is a narcissistic number."
//	}
//
// Error response (400 Bad Request), for missing or non-integer input and
// for any unexpected failure while classifying:
//
//	{ "number": "abc", "error": true }
//
// The fun fact never fails the request: an unreachable trivia service
// yields fallback text. history may be nil; a failed history write is
// logged and otherwise ignored.
// ─────────────────────────────────────────────────────────────────────────────
func Classify(fetcher funfact.Fetcher, history storage.Storage, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := types.ClassificationRequest{Number: r.URL.Query().Get("number")}

		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("classification failed",
					slog.String("number", req.Number),
					slog.String("error", fmt.Sprint(rec)))
				reject(w, req.Number, m)
			}
		}()

		if err := validator.New().Struct(req); err != nil {
			slog.Info("rejecting classification",
				slog.String("number", req.Number),
				slog.String("error", err.Error()))
			reject(w, req.Number, m)
			return
		}

		n, err := classify.ParseNumber(req.Number)
		if err != nil {
			slog.Info("rejecting classification",
				slog.String("number", req.Number),
				slog.String("error", err.Error()))
			reject(w, req.Number, m)
			return
		}

		c := classify.Classify(n)
		fact := fetcher.Fetch(r.Context(), n)

		result := types.ClassificationResult{
			Number:     c.Number,
			IsPrime:    c.IsPrime,
			IsPerfect:  c.IsPerfect,
			Properties: c.Properties,
			DigitSum:   c.DigitSum,
			FunFact:    fact.Text,
		}

		if history != nil {
			if _, err := history.SaveClassification(result, fact.Fallback); err != nil {
				slog.Error("failed to record classification",
					slog.Int64("number", n),
					slog.String("error", err.Error()))
			}
		}

		slog.Info("number classified",
			slog.Int64("number", n),
			slog.Bool("fact_fallback", fact.Fallback))
		m.ObserveClassification(metrics.ResultOK)

		response.WriteJSON(w, http.StatusOK, result)
	}
}

func reject(w http.ResponseWriter, raw string, m *metrics.Metrics) {
	m.ObserveClassification(metrics.ResultInvalid)
	response.WriteJSON(w, http.StatusBadRequest, response.ClassificationError(raw))
}
