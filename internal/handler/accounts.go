package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"gitlab.tepseg.com/ai/lol-accounts/internal/httputil"
	"gitlab.tepseg.com/ai/lol-accounts/internal/model"
	"gitlab.tepseg.com/ai/lol-accounts/internal/repository"
	"gitlab.tepseg.com/ai/lol-accounts/internal/riot"
	"gitlab.tepseg.com/ai/lol-accounts/internal/service"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/refresh", h.Refresh)
	r.Post("/", h.Create)
	r.Get("/{id}/password", h.Password)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list accounts")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch accounts")
		return
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	httputil.WriteJSON(w, http.StatusOK, accounts)
}

// Refresh re-fetches ranked stats for every account. Individual lookup
// failures are absorbed by the service, so the response is always the
// full account set.
func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.RefreshAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh accounts")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to refresh accounts")
		return
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	httputil.WriteJSON(w, http.StatusOK, accounts)
}

type createAccountRequest struct {
	Login    string `json:"login"`
	RiotID   string `json:"riotId"`
	Region   string `json:"region"`
	Password string `json:"password"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Login == "" || req.RiotID == "" || req.Region == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	account, err := h.accounts.Create(r.Context(), service.CreateParams{
		Login:    req.Login,
		RiotID:   req.RiotID,
		Region:   req.Region,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, riot.ErrUnknownRegion) {
			httputil.WriteError(w, http.StatusBadRequest, "Unknown region")
			return
		}
		if errors.Is(err, model.ErrInvalidRiotID) {
			httputil.WriteError(w, http.StatusBadRequest, "Invalid riot id")
			return
		}
		log.Error().Err(err).Str("riotId", req.RiotID).Msg("failed to create account")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to add account")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, account)
}

// Password returns the transiently decrypted credential so the UI can
// copy it. Undecryptable values come back as an empty string.
func (h *AccountHandler) Password(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	password, err := h.accounts.Password(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Error().Err(err).Int64("accountId", id).Msg("failed to load account password")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to get password")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"password": password})
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("accountId", id).Msg("failed to delete account")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
