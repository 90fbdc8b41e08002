package httphandler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
	"github.com/hereandnowai/customer-ltv-backend/internal/serve/httperror"
	"github.com/hereandnowai/customer-ltv-backend/internal/services"
	"github.com/hereandnowai/customer-ltv-backend/internal/utils"
)

type CustomerHandler struct {
	Store         *data.CustomerStore
	ImportService *services.ImportService
}

type GetCustomersResponse struct {
	Customers []*data.Customer `json:"customers"`
	Total     int              `json:"total"`
	Notice    string           `json:"notice,omitempty"`
}

// GetCustomers lists the collection, optionally filtered with the q query
// parameter matching name or email.
func (h CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.Store.Search(r.URL.Query().Get("q"))

	response := GetCustomersResponse{
		Customers: customers,
		Total:     len(customers),
		Notice:    h.Store.Notice(),
	}
	httpjson.RenderStatus(w, http.StatusOK, response, httpjson.JSON)
}

func (h CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	customer, err := h.Store.Get(customerID)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			httperror.NotFound("customer not found", err, nil).Render(w)
			return
		}
		httperror.InternalError(r.Context(), "Cannot retrieve customer", err, nil).Render(w)
		return
	}

	httpjson.RenderStatus(w, http.StatusOK, customer, httpjson.JSON)
}

type ImportCustomersResponse struct {
	Message       string `json:"message"`
	TotalImported int    `json:"total_imported"`
}

// ImportCustomers ingests a CSV file and replaces the whole collection with
// its rows. The file comes as the "file" field of a multipart form.
func (h CustomerHandler) ImportCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buf, _, httpErr := parseCsvFromMultipartRequest(r)
	if httpErr != nil {
		httpErr.Render(w)
		return
	}

	total, err := h.ImportService.ImportFromCSV(ctx, buf)
	if err != nil {
		var schemaErr *data.SchemaError
		var fieldErr *data.FieldValidationError
		switch {
		case errors.As(err, &schemaErr):
			httperror.BadRequest(schemaErr.Error(), err, nil).Render(w)
		case errors.As(err, &fieldErr):
			extras := map[string]interface{}{
				"field": fieldErr.Field,
				"row":   fieldErr.Row,
			}
			httperror.UnprocessableEntity(fieldErr.Error(), err, extras).Render(w)
		default:
			httperror.InternalError(ctx, "Cannot import customers", err, nil).Render(w)
		}
		return
	}

	response := ImportCustomersResponse{
		Message:       "customers imported successfully",
		TotalImported: total,
	}
	httpjson.RenderStatus(w, http.StatusCreated, response, httpjson.JSON)
}

// parseCsvFromMultipartRequest parses the CSV file from a multipart request and returns the file content and header,
// or an error if the file is not a valid CSV.
func parseCsvFromMultipartRequest(r *http.Request) (*bytes.Buffer, *multipart.FileHeader, *httperror.HTTPError) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, httperror.BadRequest("could not parse file", err, nil)
	}
	defer file.Close()

	if err = utils.ValidatePathIsNotTraversal(header.Filename); err != nil {
		return nil, nil, httperror.BadRequest("file name contains invalid traversal pattern", nil, nil)
	}

	if filepath.Ext(header.Filename) != ".csv" {
		return nil, nil, httperror.BadRequest("the file extension should be .csv", nil, nil)
	}

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, file); err != nil {
		return nil, nil, httperror.BadRequest("could not read file", err, nil)
	}

	return &buf, header, nil
}
