package validators

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajarnugraha/cetakin-backend/internal/files"
	"github.com/fajarnugraha/cetakin-backend/internal/orders"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

const maxMultipartMemory = 32 << 20

// fieldErrors accumulates per-field messages across the whole form so the
// client sees everything wrong in one response.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return pkgerrors.NewFieldValidation("Validation error", f)
}

// DecodeCreateOrderForm binds the multipart order-creation form. Design files
// are accepted under both design_files and design_files[].
func DecodeCreateOrderForm(r *http.Request) (*orders.CreateOrderInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	errs := fieldErrors{}
	input := &orders.CreateOrderInput{}

	input.ProductID = formUUID(r, "product_id", true, errs)
	input.CustomerName = formRequired(r, "customer_name", errs)
	input.CustomerPhone = formRequired(r, "customer_phone", errs)

	if email := formValue(r, "customer_email"); email != "" {
		if !strings.Contains(email, "@") {
			errs.add("customer_email", "must be a valid email")
		} else {
			input.CustomerEmail = &email
		}
	}

	input.Width = formDecimal(r, "width", errs)
	input.Height = formDecimal(r, "height", errs)
	input.Quantity = formQuantity(r, errs)

	if id := formOptionalUUID(r, "material_id", errs); id != nil {
		input.MaterialID = id
	}
	if id := formOptionalUUID(r, "finishing_id", errs); id != nil {
		input.FinishingID = id
	}

	input.IsUrgent = formBool(r, "is_urgent", errs)
	input.DeadlineDate = formDate(r, "deadline_date", errs)

	if notes := formValue(r, "customer_notes"); notes != "" {
		input.CustomerNotes = &notes
	}

	uploads, err := formUploads(r)
	if err != nil {
		return nil, err
	}
	input.DesignFiles = uploads

	if err := errs.err(); err != nil {
		return nil, err
	}
	return input, nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func formRequired(r *http.Request, key string, errs fieldErrors) string {
	value := formValue(r, key)
	if value == "" {
		errs.add(key, "is required")
	}
	return value
}

func formUUID(r *http.Request, key string, required bool, errs fieldErrors) uuid.UUID {
	raw := formValue(r, key)
	if raw == "" {
		if required {
			errs.add(key, "is required")
		}
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		errs.add(key, "must be a valid id")
		return uuid.Nil
	}
	return id
}

func formOptionalUUID(r *http.Request, key string, errs fieldErrors) *uuid.UUID {
	raw := formValue(r, key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		errs.add(key, "must be a valid id")
		return nil
	}
	return &id
}

func formDecimal(r *http.Request, key string, errs fieldErrors) *decimal.Decimal {
	raw := formValue(r, key)
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		errs.add(key, "must be a number")
		return nil
	}
	if value.IsNegative() {
		errs.add(key, "must be zero or greater")
		return nil
	}
	return &value
}

func formQuantity(r *http.Request, errs fieldErrors) int {
	raw := formValue(r, "quantity")
	if raw == "" {
		errs.add("quantity", "is required")
		return 0
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		errs.add("quantity", "must be an integer")
		return 0
	}
	if qty < 1 {
		errs.add("quantity", "must be at least 1")
	}
	return qty
}

func formBool(r *http.Request, key string, errs fieldErrors) bool {
	raw := formValue(r, key)
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		errs.add(key, "must be a boolean")
		return false
	}
	return value
}

func formDate(r *http.Request, key string, errs fieldErrors) *time.Time {
	raw := formValue(r, key)
	if raw == "" {
		return nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		errs.add(key, "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &value
}

func formUploads(r *http.Request) ([]files.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var headers []*multipart.FileHeader
	headers = append(headers, r.MultipartForm.File["design_files"]...)
	headers = append(headers, r.MultipartForm.File["design_files[]"]...)

	uploads := make([]files.Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable upload").
				WithDetails(map[string][]string{"design_files": {header.Filename + ": could not be read"}})
		}
		uploads = append(uploads, files.Upload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		})
	}
	return uploads, nil
}
