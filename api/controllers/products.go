package controllers

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/classmart/classmart-backend/api/responses"
	"github.com/classmart/classmart-backend/api/validators"
	productsvc "github.com/classmart/classmart-backend/internal/products"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
)

// maxProductFormMemory bounds the in-memory portion of a multipart parse.
const maxProductFormMemory = 8 << 20

// ListProducts handles GET /api/productos/.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// GetProduct handles GET /api/productos/{id}/.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// FilterProducts handles GET /api/filter_products/?criteria=&value=.
func FilterProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		criteria := strings.TrimSpace(r.URL.Query().Get("criteria"))
		value := strings.TrimSpace(r.URL.Query().Get("value"))
		if criteria == "" || value == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "criteria and value are required"))
			return
		}

		records, err := svc.Filter(r.Context(), criteria, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CreateProduct handles POST /api/productos/. The admin submits the form as
// multipart so the photo can ride along; a plain JSON body also works.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productsvc.CreateProductInput
		if isMultipart(r) {
			form, err := parseProductForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			payload = productsvc.CreateProductInput(form)
			if err := validators.ValidateStruct(&payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// UpdateProduct handles PUT /api/productos/{id}/.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productsvc.UpdateProductInput
		if isMultipart(r) {
			form, err := parseProductForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			payload = productsvc.UpdateProductInput(form)
			if err := validators.ValidateStruct(&payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// PatchProductStock handles PATCH /api/productos/{id}/.
func PatchProductStock(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productsvc.PatchStockInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.PatchStock(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// DeleteProduct handles DELETE /api/productos/{id}/.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}

// parseProductForm reads the multipart fields the admin form submits. The
// photo file is optional and travels under foto_producto.
func parseProductForm(r *http.Request) (productsvc.CreateProductInput, error) {
	if err := r.ParseMultipartForm(maxProductFormMemory); err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	var input productsvc.CreateProductInput
	input.Nombre = strings.TrimSpace(r.FormValue("nombre"))

	if raw := strings.TrimSpace(r.FormValue("descripcion")); raw != "" {
		input.Descripcion = &raw
	}

	precio, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("precio")))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "precio must be a decimal number")
	}
	input.Precio = precio

	if raw := strings.TrimSpace(r.FormValue("cantidad_producto")); raw != "" {
		cantidad, err := strconv.Atoi(raw)
		if err != nil || cantidad < 0 {
			return productsvc.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "cantidad_producto must be a non-negative integer")
		}
		input.CantidadProducto = cantidad
	}

	if raw := strings.TrimSpace(r.FormValue("categoria_id")); raw != "" {
		categoriaID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || categoriaID <= 0 {
			return productsvc.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "categoria_id must be a positive integer")
		}
		input.CategoriaID = &categoriaID
	}

	file, header, err := r.FormFile("foto_producto")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, readErr, "reading uploaded photo")
		}
		input.Photo = &productsvc.PhotoUpload{Filename: header.Filename, Data: data}
	} else if err != http.ErrMissingFile {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded photo")
	}

	return input, nil
}
