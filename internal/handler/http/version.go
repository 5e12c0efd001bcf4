package http

import (
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"build_date,omitempty"`
	Commit  string `json:"build_commit,omitempty"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	build := h.services.AppInfoService.GetBuildInfo(ctx)

	utils.WriteJSON(w, versionResponse{
		Version: h.services.AppInfoService.GetAppVersion(ctx),
		Date:    build.BuildDate(),
		Commit:  build.BuildCommit(),
	}, http.StatusOK)
}
