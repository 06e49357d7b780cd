//go:build e2e

package listing_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"auction-house/internal/handler/dto/request"
	"auction-house/internal/handler/dto/response"
	"auction-house/tests/common/authtest"
	"auction-house/tests/common/dbtest"
	"auction-house/tests/common/httptest"
	"auction-house/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ListingE2ESuite struct {
	e2e.SharedSuite
	jwt    *authtest.JWTHelper
	seller uuid.UUID
	buyer  uuid.UUID
}

func TestListingE2ESuite(t *testing.T) {
	suite.Run(t, new(ListingE2ESuite))
}

func (s *ListingE2ESuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *ListingE2ESuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.seller = uuid.New()
	s.buyer = uuid.New()
}

func (s *ListingE2ESuite) token(actor uuid.UUID) string {
	return s.jwt.GenerateToken(s.T(), actor)
}

func (s *ListingE2ESuite) createListing(price int64) response.ListingResponse {
	body := request.CreateListingRequest{
		Good:     request.GoodRequest{Kind: "diamond", Quantity: 3},
		Price:    price,
		Duration: "1h",
	}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings", body, s.token(s.seller))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var res response.CreateListingResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Require().NotNil(res.Listing)
	s.Equal("/api/listings/"+res.Listing.ID.String(), w.Header().Get("Location"))
	return *res.Listing
}

func decode[T any](s *ListingE2ESuite, raw []byte) T {
	var v T
	s.Require().NoError(json.Unmarshal(raw, &v))
	return v
}

func (s *ListingE2ESuite) TestPurchaseFlow() {
	dbtest.SeedWallet(s.T(), s.DB, s.buyer, 10_000)
	l := s.createListing(2_500)

	s.Run("listed as active", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/listings/"+l.ID.String(), nil, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		got := decode[response.ListingResponse](s, w.Body.Bytes())
		s.Equal("active", got.Status)
		s.Equal(int64(1), got.Version)
	})

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/purchase", nil, s.token(s.buyer))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	res := decode[response.CommandResponse](s, w.Body.Bytes())
	s.Equal(response.OutcomeCommitted, res.Outcome)
	s.Equal("direct", res.Delivery)
	s.Require().NotNil(res.SellerAmountCents)
	s.Equal(int64(2_375), *res.SellerAmountCents)
	s.Require().NotNil(res.Listing)
	s.Equal("sold", res.Listing.Status)
	s.Equal(int64(2), res.Listing.Version)

	s.Equal(1, dbtest.CountRows(s.T(), s.DB, "inventory_items", "actor_id = $1", s.buyer))

	buyerBal := s.balance(s.buyer)
	s.Equal(int64(7_500), buyerBal.BalanceCents)
	s.Equal("75.00 coins", buyerBal.Formatted)
	s.Equal(int64(2_375), s.balance(s.seller).BalanceCents)

	for _, actor := range []uuid.UUID{s.seller, s.buyer} {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/me/history", nil, s.token(actor))
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		h := decode[response.HistoryResponse](s, w.Body.Bytes())
		s.Require().Len(h.Records, 1)
		s.Equal("sold", h.Records[0].Kind)
		s.Equal(l.ID, h.Records[0].ListingID)
		s.Require().NotNil(h.Records[0].CounterpartyID)
		s.Equal(s.buyer, *h.Records[0].CounterpartyID)
	}

	s.Run("second purchase is rejected", func() {
		other := uuid.New()
		dbtest.SeedWallet(s.T(), s.DB, other, 10_000)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/purchase", nil, s.token(other))
		s.Equal(http.StatusConflict, w.Code, w.Body.String())
	})
}

func (s *ListingE2ESuite) TestPurchaseRejections() {
	s.Run("insufficient funds leaves everything untouched", func() {
		dbtest.SeedWallet(s.T(), s.DB, s.buyer, 100)
		l := s.createListing(2_500)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/purchase", nil, s.token(s.buyer))
		s.Equal(http.StatusPaymentRequired, w.Code, w.Body.String())
		s.Equal(int64(100), s.balance(s.buyer).BalanceCents)
		s.Equal(0, dbtest.CountRows(s.T(), s.DB, "transaction_records", ""))
	})

	s.Run("seller cannot buy their own listing", func() {
		dbtest.SeedWallet(s.T(), s.DB, s.seller, 10_000)
		l := s.createListing(2_500)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/purchase", nil, s.token(s.seller))
		s.Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("unknown listing", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+uuid.NewString()+"/purchase", nil, s.token(s.buyer))
		s.Equal(http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("missing token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+uuid.NewString()+"/purchase", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("expired token", func() {
		expired := s.jwt.CreateExpiredToken(s.T(), s.buyer)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+uuid.NewString()+"/purchase", nil, expired)
		s.Equal(http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *ListingE2ESuite) TestCancelFlow() {
	l := s.createListing(1_000)

	s.Run("only the seller may cancel", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/cancel", nil, s.token(s.buyer))
		s.Equal(http.StatusForbidden, w.Code, w.Body.String())
	})

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/cancel", nil, s.token(s.seller))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	res := decode[response.CommandResponse](s, w.Body.Bytes())
	s.Equal(response.OutcomeCommitted, res.Outcome)
	s.Equal("cancelled", res.Listing.Status)
	s.Require().NotNil(res.Record)
	s.Equal("cancelled", res.Record.Kind)

	// Goods go back to the seller.
	s.Equal(1, dbtest.CountRows(s.T(), s.DB, "inventory_items", "actor_id = $1", s.seller))

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/listings", nil, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Empty(decode[response.ListingListResponse](s, w.Body.Bytes()).Listings)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/sellers/"+s.seller.String()+"/listings?include_inactive=true", nil, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Len(decode[response.ListingListResponse](s, w.Body.Bytes()).Listings, 1)
}

func (s *ListingE2ESuite) TestFullInventoryDefersToMailbox() {
	dbtest.SeedWallet(s.T(), s.DB, s.buyer, 10_000)
	dbtest.SetInventoryCapacity(s.T(), s.DB, s.buyer, 0)
	l := s.createListing(500)

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/listings/"+l.ID.String()+"/purchase", nil, s.token(s.buyer))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	res := decode[response.CommandResponse](s, w.Body.Bytes())
	s.Equal("deferred", res.Delivery)
	s.Equal(1, dbtest.CountRows(s.T(), s.DB, "mailbox_items", "actor_id = $1", s.buyer))
}

func (s *ListingE2ESuite) balance(actor uuid.UUID) response.BalanceResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/me/balance", nil, s.token(actor))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return decode[response.BalanceResponse](s, w.Body.Bytes())
}
