// Package history contains read-only HTTP handlers over the
// classification history log.
package history

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/number-classifier/internal/storage"
	"github.com/aanand-mishra/number-classifier/internal/types"
	"github.com/aanand-mishra/number-classifier/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// DefaultLimit is used when ?limit is absent.
const DefaultLimit = 20

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/classifications?limit=N
// Returns up to N records (default 20, at most 100), newest first.
//
// Error responses:
//
//	400 Bad Request  — limit is not an integer in [1, 100]
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := types.HistoryQuery{Limit: DefaultLimit}

		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errors.New("invalid limit: must be an integer")))
				return
			}
			query.Limit = limit
		}

		if err := validator.New().Struct(query); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		records, err := store.GetRecentClassifications(query.Limit)
		if err != nil {
			slog.Error("error listing classifications", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, records)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/classifications/{id}
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no record with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		record, err := store.GetClassificationByID(intID)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error getting classification",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, record)
	}
}
