package validators

import (
	"net/http"
	"strings"

	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

// QueryString returns a trimmed query parameter, empty when absent.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// ParseStatusFilter validates an optional ?status= value.
func ParseStatusFilter(r *http.Request) (*enums.OrderStatus, error) {
	raw := QueryString(r, "status")
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			"status": {"invalid status value"},
		})
	}
	return &status, nil
}
