package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/infra/redis"
)

const maxSampleSize = 32 << 20 // 32 MiB upload cap for reference audio

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	SecretKey string `json:"secret_key"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	acc, err := s.authUC.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := s.jwt.IssueUserToken(acc.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: acc})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	acc, err := s.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := s.jwt.IssueUserToken(acc.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: acc})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	admin, err := s.authUC.AdminLogin(r.Context(), req.Email, req.Password, req.SecretKey)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := s.jwt.IssueAdminToken(admin.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: admin})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	acc, err := s.accountUC.Get(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (s *Server) handleMyTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.accountUC.Transactions(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.planUC.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleListPaymentAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.paymentUC.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

type placeOrderRequest struct {
	PlanID        string `json:"plan_id"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	order, err := s.orderUC.Place(r.Context(), accountIDFrom(r.Context()),
		req.PlanID, req.PaymentMethod, req.TransactionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orderUC.ListMine(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUsableVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := s.voiceUC.ListUsable(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voices)
}

func (s *Server) handleMyVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := s.voiceUC.ListMine(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voices)
}

func (s *Server) handlePublicVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := s.voiceUC.ListPublic(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voices)
}

// allow applies a fixed-window rate limit; a redis outage fails open.
func (s *Server) allow(r *http.Request, key string, limit int, window time.Duration) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.Allow(r.Context(), key, limit, window)
	if err != nil {
		s.log.Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	return ok
}

func (s *Server) handleCloneVoice(w http.ResponseWriter, r *http.Request) {
	accountID := accountIDFrom(r.Context())
	if !s.allow(r, redis.CloneKey(accountID), s.limits.ClonePerHour, time.Hour) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many clone requests"})
		return
	}

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

	voice, err := s.voiceUC.CreatePrivate(r.Context(), accountID,
		r.FormValue("name"), file, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, voice)
}

func (s *Server) handleDeleteVoice(w http.ResponseWriter, r *http.Request) {
	err := s.voiceUC.Delete(r.Context(), accountIDFrom(r.Context()), chi.URLParam(r, "voiceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "voice deleted"})
}

type generateRequest struct {
	VoiceID  string `json:"voice_id"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	accountID := accountIDFrom(r.Context())
	if !s.allow(r, redis.GenerateKey(accountID), s.limits.GeneratePerMinute, time.Minute) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many generation requests"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	job, err := s.genUC.Submit(r.Context(), accountID, req.VoiceID, req.Text, req.Language)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleGenerationStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.genUC.Poll(r.Context(), accountIDFrom(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
