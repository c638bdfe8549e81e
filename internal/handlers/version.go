package handlers

import (
	"net/http"
	"runtime/debug"
)

// Version is stamped at build time via -ldflags; "dev" for local builds.
var Version = "dev"

// VersionResponse reports the running build
type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// GetVersion reports the server build version
func GetVersion(w http.ResponseWriter, r *http.Request) {
	resp := VersionResponse{Version: Version}
	if info, ok := debug.ReadBuildInfo(); ok {
		resp.GoVersion = info.GoVersion
	}
	respondJSON(w, http.StatusOK, resp)
}
