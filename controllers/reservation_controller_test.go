package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/availability"
	"rental-backend/models"
	"rental-backend/services"
)

type stubReservationSvc struct {
	proposeErr error
	decideErr  error

	gotListingID uint
	gotGuestID   uint
	gotDecision  availability.Decision
}

func (s *stubReservationSvc) Propose(ctx context.Context, listingID, guestID uint, start, end time.Time) (*models.Reservation, services.PriceBreakdown, error) {
	s.gotListingID = listingID
	s.gotGuestID = guestID
	if s.proposeErr != nil {
		return nil, services.PriceBreakdown{}, s.proposeErr
	}
	r := &models.Reservation{
		ListingID:  listingID,
		UserID:     guestID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: 300,
		Status:     models.ReservationPending,
	}
	r.ID = 42
	breakdown := services.PriceBreakdown{
		BaseTotal:   300,
		CleaningFee: services.CleaningFee,
		ServiceFee:  services.ServiceFee,
		GrandTotal:  300 + services.CleaningFee + services.ServiceFee,
	}
	return r, breakdown, nil
}

func (s *stubReservationSvc) Decide(ctx context.Context, reservationID, deciderID uint, decision availability.Decision) (*models.Reservation, error) {
	s.gotDecision = decision
	if s.decideErr != nil {
		return nil, s.decideErr
	}
	r := &models.Reservation{Status: models.ReservationAccepted}
	r.ID = reservationID
	return r, nil
}

func (s *stubReservationSvc) GetByID(ctx context.Context, id, requesterID uint) (*models.Reservation, error) {
	return nil, availability.ErrNotFound
}

func (s *stubReservationSvc) ListForListing(ctx context.Context, listingID, requesterID uint) ([]models.Reservation, error) {
	return nil, availability.ErrNotAuthorized
}

func (s *stubReservationSvc) ListForHost(ctx context.Context, hostID uint) ([]models.Reservation, error) {
	return []models.Reservation{}, nil
}

func (s *stubReservationSvc) ListTrips(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	return []models.Reservation{}, nil
}

func newTestRouter(svc ReservationSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rc := NewReservationController(svc)

	r := gin.New()
	authed := r.Group("/api", func(c *gin.Context) {
		c.Set("userID", uint(7))
		c.Next()
	})
	authed.POST("/reservations", rc.Create)
	authed.PATCH("/reservations/:id", rc.Decide)
	authed.GET("/reservations/:id", rc.Get)
	authed.GET("/reservations/listing/:id", rc.ListForListing)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReservation_Created(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"listingId": 3,
		"startDate": "2024-06-01",
		"endDate":   "2024-06-04",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(3), svc.gotListingID)
	assert.Equal(t, uint(7), svc.gotGuestID)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Pricing services.PriceBreakdown `json:"pricing"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(340), resp.Data.Pricing.GrandTotal)
}

func TestCreateReservation_Conflict(t *testing.T) {
	svc := &stubReservationSvc{proposeErr: availability.ErrConflict}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"listingId": 3,
		"startDate": "2024-06-01",
		"endDate":   "2024-06-04",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservation_BadDate(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"listingId": 3,
		"startDate": "June 1st",
		"endDate":   "2024-06-04",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservation_MissingFields(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"listingId": 3,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecideReservation_Accepted(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPatch, "/api/reservations/42", gin.H{"decision": "accept"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, availability.DecisionAccept, svc.gotDecision)
}

func TestDecideReservation_UnknownDecision(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPatch, "/api/reservations/42", gin.H{"decision": "cancel"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecideReservation_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", availability.ErrNotFound, http.StatusNotFound},
		{"not owner", availability.ErrNotAuthorized, http.StatusForbidden},
		{"conflict", availability.ErrConflict, http.StatusConflict},
		{"terminal", availability.ErrInvalidState, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubReservationSvc{decideErr: tc.err}
			r := newTestRouter(svc)

			w := doJSON(t, r, http.MethodPatch, "/api/reservations/42", gin.H{"decision": "accept"})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestDecideReservation_BadID(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPatch, "/api/reservations/abc", gin.H{"decision": "accept"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReservation_NotFound(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/reservations/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListForListing_Forbidden(t *testing.T) {
	svc := &stubReservationSvc{}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/reservations/listing/3", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
