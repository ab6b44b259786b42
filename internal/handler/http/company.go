package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetByUsername(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Create implements CompanyHandler.
func (h *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq company.CreateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.companyService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company created", "company_id", created.ID)
	response.Created(w, "Company created successfully", created)
}

// Get implements CompanyHandler.
func (h *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("GetCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetByUsername implements CompanyHandler.
func (h *CompanyHandlerImpl) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	found, err := h.companyService.GetByUsername(r.Context(), username)
	if err != nil {
		slog.Error("GetCompanyByUsername service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements CompanyHandler.
func (h *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	companies, err := h.companyService.List(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListCompanies service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companies)
}

// Update implements CompanyHandler.
func (h *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.companyService.Update(r.Context(), id, updateReq); err != nil {
		slog.Error("UpdateCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", nil)
}
