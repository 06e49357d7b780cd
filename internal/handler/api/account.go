package api

import (
	"net/http"

	reqdto "auction-house/internal/handler/dto/request"
	resdto "auction-house/internal/handler/dto/response"
	"auction-house/internal/handler/httperr"
	"auction-house/internal/handler/middleware"
	"auction-house/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	q queries.AccountQueries
}

func NewAccountHandler(q queries.AccountQueries) *AccountHandler {
	return &AccountHandler{q: q}
}

// @Summary Trade history
// @Description Sales, purchases, cancellations and expiries of the caller, newest first
// @Tags account
// @Produce json
// @Security BearerAuth
// @Param before query string false "Cursor from a previous page"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {object} resdto.HistoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/me/history [get]
func (h *AccountHandler) History(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.HistoryQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	var cursor *queries.Cursor
	if req.Before != "" {
		cursor = &queries.Cursor{Before: req.Before}
	}
	items, next, err := h.q.History(c.Request.Context(), actorID, cursor, req.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHistory(items, next))
}

// @Summary Wallet balance
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.BalanceResponse
// @Failure 401 {object} httperr.Response
// @Router /api/me/balance [get]
func (h *AccountHandler) Balance(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	view, err := h.q.Balance(c.Request.Context(), actorID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBalanceView(view))
}
