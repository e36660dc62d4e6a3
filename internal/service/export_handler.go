package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/auth"
	"github.com/mmynk/sotien/internal/export"
	"github.com/mmynk/sotien/internal/metrics"
	"github.com/mmynk/sotien/internal/middleware"
	"github.com/mmynk/sotien/internal/storage"
)

// ExportHandler serves downloadable balance statements over plain HTTP.
type ExportHandler struct {
	store      storage.Store
	metrics    *metrics.Metrics
	jwtManager *auth.JWTManager
	now        func() time.Time
}

// NewExportHandler creates an ExportHandler. When jwtManager is nil the
// statements are served without authentication.
func NewExportHandler(store storage.Store, m *metrics.Metrics, jwtManager *auth.JWTManager) *ExportHandler {
	return &ExportHandler{store: store, metrics: m, jwtManager: jwtManager, now: time.Now}
}

// Register mounts the export routes on mux.
func (h *ExportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /export/groups/{id}/balances.xlsx", h.serve(export.FormatXLSX))
	mux.HandleFunc("GET /export/groups/{id}/balances.pdf", h.serve(export.FormatPDF))
}

func (h *ExportHandler) serve(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")
		slog.Info("Export request received", "group_id", groupID, "format", format)

		ctx := r.Context()
		if h.jwtManager != nil {
			token, ok := middleware.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}
			claims, err := h.jwtManager.Validate(token)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			ctx = middleware.WithUserID(ctx, claims.UserID)
		}

		group, err := loadGroup(ctx, h.store, groupID)
		if err != nil {
			h.error(w, format, fail("Export", err, "group_id", groupID))
			return
		}
		expenses, err := h.store.ListExpenses(ctx, group.ID)
		if err != nil {
			h.error(w, format, fail("Export", err, "group_id", groupID))
			return
		}

		data, contentType, err := export.Render(export.NewStatement(group, expenses, h.now()), format)
		if err != nil {
			h.error(w, format, fail("Export", err, "group_id", groupID))
			return
		}
		h.metrics.ObserveExport(format, nil)

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="group-%s-balances.%s"`, group.ID, format))
		if _, err := w.Write(data); err != nil {
			slog.Warn("Export write failed", "group_id", groupID, "error", err)
		}
	}
}

func (h *ExportHandler) error(w http.ResponseWriter, format string, err error) {
	h.metrics.ObserveExport(format, err)

	status := http.StatusInternalServerError
	switch connect.CodeOf(err) {
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodePermissionDenied:
		status = http.StatusForbidden
	}
	http.Error(w, err.Error(), status)
}
