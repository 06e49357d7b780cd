//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"auction-house/internal/handler/api"
	resdto "auction-house/internal/handler/dto/response"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/queries"
	"auction-house/tests/common/httptest"
	queriesmock "auction-house/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAccountQueries
	actor       uuid.UUID
}

func (s *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAccountQueries(s.mockCtrl)
	s.actor = uuid.New()
	h := api.NewAccountHandler(s.mockQueries)

	s.router.GET("/me/history", fakeAuth(s.actor), h.History)
	s.router.GET("/me/balance", fakeAuth(s.actor), h.Balance)
}

func (s *AccountHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func (s *AccountHandlerTestSuite) TestHistory() {
	amount := int64(10_000)
	buyer := uuid.New()
	view := &queries.RecordView{
		ID:             uuid.New(),
		ListingID:      uuid.New(),
		SellerID:       s.actor,
		Kind:           "sold",
		CounterpartyID: &buyer,
		AmountCents:    &amount,
		Detail:         "sold for 100.00 coins",
		Timestamp:      time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}

	s.Run("success: first page carries the next cursor", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.actor, (*queries.Cursor)(nil), 1).
			Return([]*queries.RecordView{view}, &queries.Cursor{Before: "next-page"}, nil)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/history?limit=1", nil, "bearer-token")

		var body resdto.HistoryResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Require().Len(body.Records, 1)
		s.Equal(view.ID, body.Records[0].ID)
		s.Equal(&buyer, body.Records[0].CounterpartyID)
		s.Equal(view.Timestamp.Unix(), body.Records[0].Timestamp)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("success: cursor is passed through and the last page has none", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.actor, &queries.Cursor{Before: "abc"}, 0).
			Return([]*queries.RecordView{}, nil, nil)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/history?before=abc", nil, "bearer-token")
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"records":[]}`, w.Body.String())
	})

	s.Run("error: invalid cursor is 400", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.actor, gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Wrap(queries.ErrInvalidCursor, "bad base64"))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/history?before=garbage", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "cursor")
	})

	s.Run("error: 401 without token", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/history", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *AccountHandlerTestSuite) TestBalance() {
	s.mockQueries.EXPECT().Balance(gomock.Any(), s.actor).
		Return(&queries.BalanceView{ActorID: s.actor, BalanceCents: 123_456, Formatted: "1234.56 coins"}, nil)
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/balance", nil, "bearer-token")

	var body resdto.BalanceResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	s.Equal(int64(123_456), body.BalanceCents)
	s.Equal("1234.56 coins", body.Formatted)

	s.mockQueries.EXPECT().Balance(gomock.Any(), s.actor).
		Return(nil, errs.Mark(errs.New("timeout"), errs.ErrPersistenceFailure))
	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me/balance", nil, "bearer-token")
	httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "")
}
