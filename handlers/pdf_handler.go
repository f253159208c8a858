package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"railshift/repository"
	"railshift/utils"
)

// PDFHandler serves shift manifests as downloads. Nothing is stored.
type PDFHandler struct {
	Repo   *repository.PDFRepository
	Logger *zap.Logger
	// Render defaults to utils.GenerateManifestPDF.
	Render func(ctx context.Context, repo *repository.PDFRepository, shiftID int64) ([]byte, error)
}

func (h *PDFHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid usn shift id")
		return
	}

	render := h.Render
	if render == nil {
		render = utils.GenerateManifestPDF
	}
	pdfBytes, err := render(r.Context(), h.Repo, shiftID)
	if err != nil {
		h.Logger.Error("failed to generate manifest", zap.Int64("usn_shift_id", shiftID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}
	if len(pdfBytes) == 0 {
		writeError(w, http.StatusNotFound, "usn shift not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="manifest_%d.pdf"`, shiftID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
