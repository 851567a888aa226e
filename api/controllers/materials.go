package controllers

import (
	"net/http"

	"github.com/fajarnugraha/cetakin-backend/api/responses"
	"github.com/fajarnugraha/cetakin-backend/internal/catalog"
	"github.com/fajarnugraha/cetakin-backend/pkg/logger"
)

func ListMaterials(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materials, err := svc.ListMaterials(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "", materials)
	}
}

func GetMaterial(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		material, err := svc.GetMaterial(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "", material)
	}
}
