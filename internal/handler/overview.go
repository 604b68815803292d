package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"gitlab.tepseg.com/ai/lol-accounts/internal/httputil"
	"gitlab.tepseg.com/ai/lol-accounts/internal/repository"
)

type OverviewHandler struct {
	statsRepo repository.StatsRepository
}

func NewOverviewHandler(statsRepo repository.StatsRepository) *OverviewHandler {
	return &OverviewHandler{statsRepo: statsRepo}
}

func (h *OverviewHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.statsRepo.GetOverviewStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overview stats")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	regions, err := h.statsRepo.CountByRegion(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accounts by region")
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	byRegion := make(map[string]int, len(regions))
	for _, rc := range regions {
		byRegion[rc.Region] = rc.Count
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"accounts": stats.AccountCount,
		"ranked":   stats.RankedCount,
		"unranked": stats.UnrankedCount,
		"byRegion": byRegion,
	})
}
