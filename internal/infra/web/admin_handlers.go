package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
)

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsUC.Collect(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, total, err := s.accountUC.List(r.Context(), q.Get("search"), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
	})
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

func (s *Server) handleAdminBlockUser(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	acc, err := s.accountUC.SetBlocked(r.Context(), chi.URLParam(r, "accountID"), req.Blocked)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

type addCreditsRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) handleAdminAddCredits(w http.ResponseWriter, r *http.Request) {
	var req addCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	acc, err := s.ledgerUC.AdminAdd(r.Context(), chi.URLParam(r, "accountID"), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.accountUC.Delete(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (s *Server) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	status := model.OrderStatus(r.URL.Query().Get("status"))
	orders, err := s.orderUC.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleAdminApproveOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orderUC.Approve(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleAdminRejectOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orderUC.Reject(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleAdminListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.planUC.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

type planRequest struct {
	Name          string `json:"name"`
	Credits       int64  `json:"credits"`
	PriceCents    int64  `json:"price_cents"`
	VoiceCloneLim int    `json:"voice_clone_limit"`
	ExpireDays    int    `json:"expire_days"`
	IsActive      *bool  `json:"is_active"`
}

func (s *Server) handleAdminCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	plan, err := s.planUC.Create(r.Context(), req.Name, req.Credits, req.PriceCents,
		req.VoiceCloneLim, req.ExpireDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleAdminUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	plan, err := s.planUC.Get(r.Context(), chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.Credits > 0 {
		plan.Credits = req.Credits
	}
	if req.PriceCents > 0 {
		plan.PriceCents = req.PriceCents
	}
	if req.VoiceCloneLim > 0 {
		plan.VoiceCloneLim = req.VoiceCloneLim
	}
	if req.ExpireDays > 0 {
		plan.ExpireDays = req.ExpireDays
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planUC.Update(r.Context(), plan); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleAdminDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.planUC.Delete(r.Context(), chi.URLParam(r, "planID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "plan deleted"})
}

func (s *Server) handleAdminListPaymentAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.paymentUC.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

type paymentAccountRequest struct {
	Method        string `json:"method"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	IsActive      *bool  `json:"is_active"`
}

func (s *Server) handleAdminCreatePaymentAccount(w http.ResponseWriter, r *http.Request) {
	var req paymentAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	pa, err := s.paymentUC.Create(r.Context(), req.Method, req.AccountNumber, req.AccountName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pa)
}

func (s *Server) handleAdminUpdatePaymentAccount(w http.ResponseWriter, r *http.Request) {
	var req paymentAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	pa, err := s.paymentUC.Get(r.Context(), chi.URLParam(r, "paymentAccountID"))
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Method != "" {
		pa.Method = req.Method
	}
	if req.AccountNumber != "" {
		pa.AccountNumber = req.AccountNumber
	}
	if req.AccountName != "" {
		pa.AccountName = req.AccountName
	}
	if req.IsActive != nil {
		pa.IsActive = *req.IsActive
	}

	if err := s.paymentUC.Update(r.Context(), pa); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pa)
}

func (s *Server) handleAdminDeletePaymentAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.paymentUC.Delete(r.Context(), chi.URLParam(r, "paymentAccountID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "payment account deleted"})
}

func (s *Server) handleAdminPublishVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSampleSize); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	file, header, err := r.FormFile("audio_file")
	if err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	defer file.Close()

	voice, err := s.voiceUC.CreatePublic(r.Context(), r.FormValue("name"),
		file, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, voice)
}

func (s *Server) handleAdminDeleteVoice(w http.ResponseWriter, r *http.Request) {
	if err := s.voiceUC.AdminDelete(r.Context(), chi.URLParam(r, "voiceID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "voice deleted"})
}
