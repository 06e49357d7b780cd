//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"
	"auction-house/internal/handler/api"
	resdto "auction-house/internal/handler/dto/response"
	"auction-house/internal/handler/httperr"
	"auction-house/internal/handler/middleware"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/queries"
	"auction-house/internal/usecase/shared"
	"auction-house/tests/common/builder"
	"auction-house/tests/common/httptest"
	"auction-house/tests/common/testutil"
	commandsmock "auction-house/tests/mock/commands"
	queriesmock "auction-house/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ListingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockListingCommands
	mockQueries  *queriesmock.MockListingQueries
	actor        uuid.UUID
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockListingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockListingQueries(s.mockCtrl)
	s.actor = uuid.New()
	h := api.NewListingHandler(s.mockCommands, s.mockQueries)

	authMiddleware := fakeAuth(s.actor)

	s.router.POST("/listings", authMiddleware, h.Create)
	s.router.GET("/listings", h.List)
	s.router.GET("/listings/:id", h.Get)
	s.router.POST("/listings/:id/purchase", authMiddleware, h.Purchase)
	s.router.POST("/listings/:id/cancel", authMiddleware, h.Cancel)
	s.router.GET("/sellers/:id/listings", h.ListBySeller)
}

func (s *ListingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

// fakeAuth stands in for the JWT middleware: any bearer token authenticates as actor.
func fakeAuth(actor uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActorID(c, actor)
		c.Next()
	}
}

type testCaseListing struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ListingHandlerTestSuite) TestCreate() {
	url := "/listings"
	b := builder.NewListingBuilder().WithSeller(s.actor)
	reqBody := b.BuildCreateRequestDTO()
	created := b.MustBuild()
	result := &commands.CreateListingResult{Listing: created, Message: "Listed 1x diamond_sword for 100.00 coins."}

	s.Run("success: returns 201 with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateListingInput) (*commands.CreateListingResult, error) {
				s.Equal(s.actor, in.Seller)
				s.Equal(24*time.Hour, in.Duration)
				s.Equal("diamond_sword", in.GoodKind)
				s.Equal(int64(10_000), in.Price)
				return result, nil
			})
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CreateListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.Listing.ID)
		s.Equal(created.EndAt().Unix(), body.Listing.EndAt)
		s.Equal(result.Message, body.Message)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/listings/" + created.ID().String()})
	})

	s.Run("error: 400 on invalid request bodies", func() {
		cases := []testCaseListing{
			{name: "price zero", mutate: testutil.Field("price", 0), expectCode: http.StatusBadRequest},
			{name: "negative buy now", mutate: testutil.Field("buy_now_price", -5), expectCode: http.StatusBadRequest},
			{name: "missing duration", mutate: testutil.Field("duration", nil), expectCode: http.StatusBadRequest},
			{name: "unparseable duration", mutate: testutil.Field("duration", "tomorrow"), expectCode: http.StatusBadRequest},
			{name: "negative duration", mutate: testutil.Field("duration", "-1h"), expectCode: http.StatusBadRequest},
			{name: "missing good", mutate: testutil.Field("good", nil), expectCode: http.StatusBadRequest},
			{name: "zero quantity", mutate: testutil.Field("good", map[string]any{"kind": "apple", "quantity": 0}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: use case failures map to status codes", func() {
		cases := []struct {
			name    string
			err     error
			status  int
			errCode httperr.Code
		}{
			{"not found", errs.Wrapf(errs.ErrNotFound, "listing %s", l.ID()), http.StatusNotFound, api.CodeListingNotFound},
			{"not active", errs.Wrap(errs.ErrNotActive, "listing is sold"), http.StatusConflict, api.CodeListingNotActive},
			{"self trade", errs.ErrSelfTradeRejected, http.StatusUnprocessableEntity, api.CodeSelfTrade},
			{"insufficient funds", errs.Wrap(errs.ErrInsufficientFunds, "price 100.00 coins"), http.StatusPaymentRequired, api.CodeInsufficientFunds},
			{"payout failed", errs.Mark(errs.New("wallet down"), errs.ErrSellerPayoutFailed), http.StatusBadGateway, api.CodeSellerPayoutFailed},
			{"compensation failed", errs.Mark(errs.New("refund lost"), errs.ErrCompensationFailure), http.StatusInternalServerError, api.CodeCompensationFailed},
			{"storage down", errs.Mark(errs.New("pool closed"), errs.ErrPersistenceFailure), http.StatusServiceUnavailable, api.CodeStorageUnavailable},
			{"unknown", errs.New("boom"), http.StatusInternalServerError, httperr.CodeInternal},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Purchase(gomock.Any(), s.actor, l.ID()).Return(nil, tc.err)
				w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), w, tc.status, "")
				httptest.AssertErrorCode(s.T(), w, string(tc.errCode), l.ID().String())
			})
		}
	})

	s.Run("error: 400 on malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/listings/not-a-uuid/purchase", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid listing id")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ListingHandlerTestSuite) TestCancel() {
	l := builder.NewListingBuilder().WithSeller(s.actor).MustBuild()
	url := "/listings/" + l.ID().String() + "/cancel"

	s.Run("success", func() {
		cancelled, err := l.MarkCancelled(l.CreatedAt().Add(time.Minute))
		s.Require().NoError(err)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.actor, l.ID()).Return(&commands.TransitionResult{
			Outcome:  commands.OutcomeCommitted,
			Listing:  cancelled,
			Delivery: shared.DeliveryDirect,
			Message:  "Listing cancelled.",
		}, nil)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.CommandResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal("cancelled", body.Listing.Status)
		s.Equal("direct", body.Delivery)
		s.Nil(body.SellerAmountCents)
	})

	s.Run("error: 403 for a non-seller", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.actor, l.ID()).Return(nil, errs.ErrUnauthorized)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "seller")
	})
}

// ================================================================================
// Reads
// ================================================================================

func (s *ListingHandlerTestSuite) TestList() {
	view := queries.NewListingView(builder.NewListingBuilder().MustBuild())
	seller := uuid.New()

	s.Run("success: query string reaches the use case", func() {
		maxPrice := int64(5_000)
		s.mockQueries.EXPECT().ListActive(gomock.Any(), queries.ActiveListingsQuery{
			Seller:        &seller,
			Kind:          "apple",
			MaxPriceCents: &maxPrice,
			Sort:          shared.SortPriceAsc,
			Limit:         5,
			Offset:        10,
		}).Return([]*queries.ListingView{view}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/listings?seller="+seller.String()+"&kind=apple&max_price=5000&sort=price_asc&limit=5&offset=10", nil, "")

		var body resdto.ListingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Require().Len(body.Listings, 1)
		s.Equal(view.ID, body.Listings[0].ID)
	})

	s.Run("success: empty result is an empty array", func() {
		s.mockQueries.EXPECT().ListActive(gomock.Any(), queries.ActiveListingsQuery{}).Return([]*queries.ListingView{}, nil)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings", nil, "")
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"listings":[]}`, w.Body.String())
	})

	s.Run("error: bad parameters", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings?seller=steve", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "seller")

		w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings?offset=-1", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")

		s.mockQueries.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(nil, errs.Wrap(queries.ErrInvalidQuery, "unknown sort"))
		w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings?sort=cheapest", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid query")
	})
}

func (s *ListingHandlerTestSuite) TestGet() {
	view := queries.NewListingView(builder.NewListingBuilder().WithBuyNowPrice(20_000).MustBuild())

	s.Run("success", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID).Return(view, nil)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings/"+view.ID.String(), nil, "")

		var body resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal(view.PriceCents, body.PriceCents)
		s.Equal(view.BuyNowPriceCents, body.BuyNowPriceCents)
		s.Nil(body.ReservePriceCents)
		s.Equal(view.CreatedAt.Unix(), body.CreatedAt)
		s.JSONEq(string(view.GoodData), string(body.GoodData))
	})

	s.Run("error: 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, errs.Wrapf(errs.ErrNotFound, "listing %s", id))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "not found")
	})
}

func (s *ListingHandlerTestSuite) TestListBySeller() {
	seller := uuid.New()
	s.mockQueries.EXPECT().ListBySeller(gomock.Any(), seller, true, 0, 0).Return([]*queries.ListingView{}, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sellers/"+seller.String()+"/listings?include_inactive=true", nil, "")
	s.Equal(http.StatusOK, w.Code)

	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sellers/x/listings", nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid seller id")
}
