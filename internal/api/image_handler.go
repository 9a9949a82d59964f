package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/dispatch"
	"github.com/dmorales-dev/tienda-api/internal/platform/objectstore"
)

// ImageHandler issues pre-signed upload URLs for product and category images.
// The client PUTs the bytes straight to object storage with the returned URL;
// no image data ever transits this service.
type ImageHandler struct {
	signer objectstore.URLSigner
}

// NewImageHandler creates an ImageHandler using the given signer.
func NewImageHandler(signer objectstore.URLSigner) *ImageHandler {
	return &ImageHandler{signer: signer}
}

// Routes returns the image route table.
func (h *ImageHandler) Routes(logger *slog.Logger) *dispatch.Dispatcher {
	d := dispatch.New("image", logger)
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: false, Handler: h.uploadURL, Description: "GET /image - obtener URL de subida"})
	return d
}

// uploadURL signs an upload grant for the requested file name. The object key
// is prefixed with a random UUID so concurrent uploads of the same file name
// never collide.
func (h *ImageHandler) uploadURL(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	fileName := strings.TrimSpace(req.Query.Get("fileName"))
	if fileName == "" {
		return nil, apperr.Validation([]apperr.FieldError{
			{Field: "fileName", Message: "es requerido", Code: "required"},
		})
	}
	if strings.ContainsAny(fileName, "/\\") {
		return nil, apperr.Validation([]apperr.FieldError{
			{Field: "fileName", Message: "no es válido", Code: "invalid"},
		})
	}

	key := uuid.NewString() + "-" + fileName
	if folder := strings.Trim(req.Query.Get("folder"), "/"); folder != "" {
		if strings.ContainsAny(folder, "\\") || strings.Contains(folder, "..") {
			return nil, apperr.Validation([]apperr.FieldError{
				{Field: "folder", Message: "no es válido", Code: "invalid"},
			})
		}
		key = folder + "/" + key
	}

	upload, err := h.signer.SignUpload(ctx, key, objectstore.ContentTypeFor(fileName))
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "URL de subida generada", Data: upload}, nil
}
