//go:build e2e

package item_test

import (
	"net/http"
	"testing"
	"time"

	"gearshare/internal/handler/dto/request"
	resdto "gearshare/internal/handler/dto/response"
	"gearshare/tests/common/authtest"
	"gearshare/tests/common/dbtest"
	"gearshare/tests/common/httptest"
	"gearshare/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const itemsURL = "/api/items"

type itemSuite struct {
	e2e.SharedSuite
}

func TestItemSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(itemSuite))
}

type cast struct {
	ownerID     uuid.UUID
	bookerID    uuid.UUID
	ownerToken  string
	bookerToken string
}

func (s *itemSuite) setupCast() cast {
	t := s.T()

	c := cast{}
	c.ownerID = dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
	c.bookerID = dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
	c.ownerToken = authtest.LoginUser(t, s.Router, "owner@example.com", authtest.TestPassword)
	c.bookerToken = authtest.LoginUser(t, s.Router, "booker@example.com", authtest.TestPassword)
	return c
}

func (s *itemSuite) TestItemCRUD() {
	s.Run("create and fetch an item", func() {
		t := s.T()
		c := s.setupCast()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, itemsURL,
			request.CreateItemRequest{Name: "Cordless Drill", Description: "18V", Available: true}, c.ownerToken)

		var created resdto.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, c.ownerID, created.OwnerID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+created.ID.String(), nil, c.ownerToken)
		var details resdto.ItemDetailsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &details)

		expected := &resdto.ItemDetailsResponse{
			ItemResponse: resdto.ItemResponse{
				OwnerID:     c.ownerID,
				Name:        "Cordless Drill",
				Description: "18V",
				Available:   true,
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.ItemResponse{}, "ID", "CreatedAt", "UpdatedAt"),
			cmpopts.EquateEmpty(),
		}
		if diff := cmp.Diff(expected, &details, opts...); diff != "" {
			t.Errorf("Item details mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("partial update leaves other fields alone", func() {
		t := s.T()
		c := s.setupCast()
		itemID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Ladder", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, itemsURL+"/"+itemID.String(),
			map[string]any{"available": false}, c.ownerToken)

		var updated resdto.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Equal(t, "Ladder", updated.Name)
		require.False(t, updated.Available)
	})

	s.Run("only the owner can update", func() {
		t := s.T()
		c := s.setupCast()
		itemID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Ladder", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, itemsURL+"/"+itemID.String(),
			map[string]any{"name": "Stolen Ladder"}, c.bookerToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "item owner")
	})
}

func (s *itemSuite) TestLastNextResolution() {
	s.Run("owner sees last and next approved bookings", func() {
		t := s.T()
		c := s.setupCast()
		itemID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Drill", true)

		now := time.Now().UTC()
		lastID := dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(-72*time.Hour), now.Add(-48*time.Hour), "approved")
		nextID := dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "approved")
		// Waiting and rejected bookings never count.
		dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(72*time.Hour), now.Add(96*time.Hour), "waiting")
		dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(-24*time.Hour), now.Add(-12*time.Hour), "rejected")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+itemID.String(), nil, c.ownerToken)
		var details resdto.ItemDetailsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &details)

		require.NotNil(t, details.LastBooking)
		require.Equal(t, lastID, details.LastBooking.ID)
		require.NotNil(t, details.NextBooking)
		require.Equal(t, nextID, details.NextBooking.ID)
	})

	s.Run("non-owner never sees booking refs", func() {
		t := s.T()
		c := s.setupCast()
		itemID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Drill", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "approved")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+itemID.String(), nil, c.bookerToken)
		var details resdto.ItemDetailsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &details)

		require.Nil(t, details.LastBooking)
		require.Nil(t, details.NextBooking)
	})

	s.Run("own items listing carries refs per item", func() {
		t := s.T()
		c := s.setupCast()
		firstID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Drill", true)
		dbtest.CreateTestItem(t, s.DB, c.ownerID, "Ladder", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, firstID, c.bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "approved")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL, nil, c.ownerToken)
		var list []*resdto.ItemDetailsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list, 2)

		withRef := 0
		for _, it := range list {
			if it.NextBooking != nil {
				withRef++
				require.Equal(t, firstID, it.ID)
			}
		}
		require.Equal(t, 1, withRef)
	})
}

func (s *itemSuite) TestComments() {
	s.Run("a finished approved booking unlocks commenting", func() {
		t := s.T()
		c := s.setupCast()
		itemID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Drill", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(-72*time.Hour), now.Add(-48*time.Hour), "approved")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, itemsURL+"/"+itemID.String()+"/comments",
			request.CreateCommentRequest{Text: "Worked great, easy pickup."}, c.bookerToken)

		var comment resdto.CommentResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &comment)
		require.Equal(t, c.bookerID, comment.AuthorID)
		require.Equal(t, "Booker", comment.AuthorName)

		// The comment shows up in the item details for everyone.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+itemID.String(), nil, c.ownerToken)
		var details resdto.ItemDetailsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &details)
		require.Len(t, details.Comments, 1)
	})

	s.Run("no finished approved booking, no comment", func() {
		t := s.T()
		c := s.setupCast()
		itemID := dbtest.CreateTestItem(t, s.DB, c.ownerID, "Drill", true)

		now := time.Now().UTC()
		// Still running, and a finished-but-waiting one: neither qualifies.
		dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(-24*time.Hour), now.Add(24*time.Hour), "approved")
		dbtest.CreateTestBooking(t, s.DB, itemID, c.bookerID,
			now.Add(-72*time.Hour), now.Add(-48*time.Hour), "waiting")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, itemsURL+"/"+itemID.String()+"/comments",
			request.CreateCommentRequest{Text: "Sneaky comment"}, c.bookerToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "finished approved booking")
	})
}
