package api

import (
	"net/http"

	reqdto "auction-house/internal/handler/dto/request"
	resdto "auction-house/internal/handler/dto/response"
	"auction-house/internal/handler/httperr"
	"auction-house/internal/handler/middleware"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/queries"
	"auction-house/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	cmds commands.ListingCommands
	q    queries.ListingQueries
}

func NewListingHandler(cmds commands.ListingCommands, q queries.ListingQueries) *ListingHandler {
	return &ListingHandler{cmds: cmds, q: q}
}

// @Summary Create listing
// @Description Put goods up for sale at a fixed price
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Create listing request"
// @Success 201 {object} resdto.CreateListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	sellerID, ok := middleware.GetActorID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(sellerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid duration", nil)
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/listings/"+result.Listing.ID().String())
	c.JSON(http.StatusCreated, resdto.FromCreateResult(result))
}

// @Summary List active listings
// @Description Browse active listings with optional filters
// @Tags listings
// @Produce json
// @Param seller query string false "Seller ID"
// @Param kind query string false "Good kind"
// @Param max_price query int false "Maximum price in cents"
// @Param sort query string false "ending_soon (default), newest, price_asc, price_desc"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} resdto.ListingListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	var req reqdto.ListActiveQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	q := queries.ActiveListingsQuery{
		Kind:          req.Kind,
		MaxPriceCents: req.MaxPrice,
		Sort:          shared.SortOrder(req.Sort),
		Limit:         req.Limit,
		Offset:        req.Offset,
	}
	if req.Seller != "" {
		seller, err := uuid.Parse(req.Seller)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid seller id", nil)
			return
		}
		q.Seller = &seller
	}
	items, err := h.q.ListActive(c.Request.Context(), q)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ListingListResponse{Listings: resdto.FromListingViews(items)})
}

// @Summary Get listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Purchase listing
// @Description Buy the listing at its price. A 409 with outcome "conflict" means the
// @Description payment settled but the listing changed concurrently; staff reconcile it.
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.CommandResponse
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.CommandResponse
// @Failure 422 {object} httperr.Response
// @Router /api/listings/{id}/purchase [post]
func (h *ListingHandler) Purchase(c *gin.Context) {
	buyerID, ok := middleware.GetActorID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	id, ok := listingID(c)
	if !ok {
		return
	}
	result, err := h.cmds.Purchase(c.Request.Context(), buyerID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(commandStatus(result.Committed()), resdto.FromPurchaseResult(result))
}

// @Summary Cancel listing
// @Description Withdraw an active listing and return the goods to the seller
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.CommandResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.CommandResponse
// @Router /api/listings/{id}/cancel [post]
func (h *ListingHandler) Cancel(c *gin.Context) {
	callerID, ok := middleware.GetActorID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	id, ok := listingID(c)
	if !ok {
		return
	}
	result, err := h.cmds.Cancel(c.Request.Context(), callerID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(commandStatus(result.Committed()), resdto.FromTransitionResult(result))
}

// @Summary List seller listings
// @Tags listings
// @Produce json
// @Param id path string true "Seller ID"
// @Param include_inactive query bool false "Include sold, cancelled and expired listings"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} resdto.ListingListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/sellers/{id}/listings [get]
func (h *ListingHandler) ListBySeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid seller id", nil)
		return
	}
	var req reqdto.SellerListingsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	items, err := h.q.ListBySeller(c.Request.Context(), sellerID, req.IncludeInactive, req.Limit, req.Offset)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ListingListResponse{Listings: resdto.FromListingViews(items)})
}

func listingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, "parse listing id"), "Invalid listing id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func commandStatus(committed bool) int {
	if committed {
		return http.StatusOK
	}
	return http.StatusConflict
}
