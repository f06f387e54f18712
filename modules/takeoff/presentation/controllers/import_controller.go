package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/presentation/dtos"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/services"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
	"github.com/fieldtrak/fieldtrak/pkg/httpapi"
	"github.com/fieldtrak/fieldtrak/pkg/serrors"
)

type ImportController struct {
	previews *services.PreviewService
	imports  *services.ImportService
	limits   configuration.ImportOptions
	validate *validator.Validate
	basePath string
}

func NewImportController(
	previews *services.PreviewService,
	imports *services.ImportService,
	limits configuration.ImportOptions,
) *ImportController {
	return &ImportController{
		previews: previews,
		imports:  imports,
		limits:   limits,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		basePath: "/takeoff/projects/{projectID}/imports",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	r.HandleFunc(c.basePath+"/preview", c.Preview).Methods(http.MethodPost)
	r.HandleFunc(c.basePath, c.Execute).Methods(http.MethodPost)
}

// Preview accepts a multipart upload under the "file" field and responds
// with the validation summary. Nothing is persisted.
func (c *ImportController) Preview(w http.ResponseWriter, r *http.Request) {
	projectID, ok := c.projectID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(c.limits.MaxFileSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ERR_BAD_MULTIPART", "failed to parse multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ERR_MISSING_FILE", `multipart field "file" is required`, nil)
		return
	}
	defer func() { _ = file.Close() }()

	preview, err := c.previews.PreviewInTx(r.Context(), projectID, header.Filename, header.Size, file)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, preview)
}

// Execute accepts the confirmed JSON payload and runs the import
// transaction. 201 on commit, 422 with the row-level details when blocked.
func (c *ImportController) Execute(w http.ResponseWriter, r *http.Request) {
	projectID, ok := c.projectID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(c.limits.MaxPayloadBytes)+1))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ERR_BAD_BODY", "failed to read request body", nil)
		return
	}
	if len(body) > c.limits.MaxPayloadBytes {
		_ = httpapi.WriteError(w, http.StatusRequestEntityTooLarge, "ERR_PAYLOAD_TOO_LARGE", "payload exceeds the size limit", nil)
		return
	}

	var req dtos.ImportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ERR_BAD_JSON", "request body is not valid JSON", nil)
		return
	}
	if err := c.validate.Struct(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ERR_INVALID_PAYLOAD", err.Error(), nil)
		return
	}

	result, err := c.imports.Execute(r.Context(), req.ToPayload(projectID))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if !result.Success {
		_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, result)
}

func (c *ImportController) projectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["projectID"]
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ERR_BAD_PROJECT_ID", "project id must be a uuid", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (c *ImportController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, base.Code, base.Message, nil)
		return
	}
	composables.UseLogger(r.Context()).WithError(err).Error("import request failed")
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "ERR_INTERNAL", "internal server error", nil)
}
