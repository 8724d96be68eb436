// internal/app/features/uploads/handler.go
package uploads

import (
	"context"
	"net/http"

	"github.com/dalemusser/devshowcase/internal/app/system/assets"
	"github.com/dalemusser/devshowcase/internal/app/system/httpjson"
	"github.com/dalemusser/devshowcase/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler exposes the asset service to clients: token fetch and image
// upload. Both are opaque pass-throughs; the asset service's answer is
// forwarded as-is and failures are not retried.
type Handler struct {
	Assets *assets.Client
	Log    *zap.Logger
}

// NewHandler creates a new uploads handler.
func NewHandler(client *assets.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Assets: client,
		Log:    logger,
	}
}

// ServeToken handles GET /api/token.
func (h *Handler) ServeToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tok, err := h.Assets.FetchToken(ctx)
	if err != nil {
		h.Log.Error("token fetch failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "asset service unavailable")
		return
	}

	httpjson.Write(w, http.StatusOK, tok)
}

// uploadInput is the request body for POST /api/upload. Path carries a
// data URL or a remote image URL.
type uploadInput struct {
	Path string `json:"path"`
}

// ServeUpload handles POST /api/upload.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	var in uploadInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Path == "" {
		httpjson.Error(w, http.StatusBadRequest, "image path is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Assets.UploadImage(ctx, in.Path)
	if err != nil {
		h.Log.Error("image upload failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "image upload failed")
		return
	}

	httpjson.Write(w, http.StatusOK, result)
}
