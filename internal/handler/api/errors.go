package api

import (
	"net/http"
	"strings"

	"auction-house/internal/handler/httperr"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	CodeListingNotFound     httperr.Code = "listing_not_found"
	CodeListingNotActive    httperr.Code = "listing_not_active"
	CodeNotSeller           httperr.Code = "not_seller"
	CodeSelfTrade           httperr.Code = "self_trade"
	CodeInsufficientFunds   httperr.Code = "insufficient_funds"
	CodeInvalidListing      httperr.Code = "invalid_listing"
	CodeListingLimitReached httperr.Code = "listing_limit_reached"
	CodeInvalidQuery        httperr.Code = "invalid_query"
	CodeInvalidCursor       httperr.Code = "invalid_cursor"
	CodeSellerPayoutFailed  httperr.Code = "seller_payout_failed"
	CodeCompensationFailed  httperr.Code = "compensation_failed"
	CodeShuttingDown        httperr.Code = "shutting_down"
	CodeStorageUnavailable  httperr.Code = "storage_unavailable"
)

type errorMapping struct {
	target error
	status int
	code   httperr.Code
	msg    string
}

// Checked in order: the more specific failures are marked with the broader ones too.
var errorMappings = []errorMapping{
	{errs.ErrCompensationFailure, http.StatusInternalServerError, CodeCompensationFailed, "Payment could not be reversed, staff have been notified"},
	{errs.ErrSellerPayoutFailed, http.StatusBadGateway, CodeSellerPayoutFailed, "Seller payout failed, you have been refunded"},
	{errs.ErrShuttingDown, http.StatusServiceUnavailable, CodeShuttingDown, "Server is shutting down"},
	{errs.ErrNotFound, http.StatusNotFound, CodeListingNotFound, "Listing not found"},
	{errs.ErrNotActive, http.StatusConflict, CodeListingNotActive, "Listing is no longer active"},
	{errs.ErrUnauthorized, http.StatusForbidden, CodeNotSeller, "Only the seller can do that"},
	{errs.ErrSelfTradeRejected, http.StatusUnprocessableEntity, CodeSelfTrade, "You cannot buy your own listing"},
	{errs.ErrInsufficientFunds, http.StatusPaymentRequired, CodeInsufficientFunds, "Insufficient funds"},
	{errs.ErrInvalidListing, http.StatusBadRequest, CodeInvalidListing, "Invalid listing"},
	{errs.ErrListingLimitReached, http.StatusTooManyRequests, CodeListingLimitReached, "Active listing limit reached"},
	{queries.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery, "Invalid query"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, CodeInvalidCursor, "Invalid cursor"},
	{errs.ErrPersistenceFailure, http.StatusServiceUnavailable, CodeStorageUnavailable, "Storage is temporarily unavailable"},
}

// ErrorDetail names the listing a failed command was about.
type ErrorDetail struct {
	ListingID string `json:"listing_id"`
}

func abortWithUseCaseError(c *gin.Context, err error) {
	var detail any
	if id := c.Param("id"); id != "" && strings.Contains(c.FullPath(), "/listings/:id") {
		detail = ErrorDetail{ListingID: id}
	}
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.Abort(c, err, httperr.New(m.status, m.code, m.msg, detail))
			return
		}
	}
	httperr.Abort(c, err, httperr.New(http.StatusInternalServerError, httperr.CodeInternal, "Internal error", detail))
}

func abortUnauthenticated(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
}

var errUnauthenticated = errs.New("no authenticated actor on request")
