package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/internal/booking"
	"hotel-reservation-backend/internal/db"
	"hotel-reservation-backend/internal/model"
	"hotel-reservation-backend/internal/notification"
	"hotel-reservation-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testServerConfig = config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000}

// recordingNotifier collects dispatched booking events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.BookingEvent
}

func (n *recordingNotifier) Dispatch(event notification.BookingEvent) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return true
}

// stubBooker returns a fixed result.
type stubBooker struct {
	rooms []int
	err   error
}

func (b stubBooker) Book(ctx context.Context, count int) ([]int, error) {
	return b.rooms, b.err
}

// newTestStore returns a seeded hotel in a private in-memory sqlite database.
func newTestStore(t *testing.T) store.Store {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	s := store.NewGormStore(gormDB)
	_, err = s.Seed(context.Background(), model.DefaultLayout)
	require.NoError(t, err)
	return s
}

func setupRouter(t *testing.T) (*gin.Engine, store.Store, *recordingNotifier) {
	s := newTestStore(t)
	notifier := &recordingNotifier{}
	h := NewHandler(s, booking.NewCoordinator(s, nil), nil, nil).WithNotifier(notifier)
	return NewRouter(h, testServerConfig), s, notifier
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type roomsResponse struct {
	Data []model.Room `json:"data"`
}

type bookResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
	Booked    []int  `json:"booked"`
}

func occupiedNumbers(t *testing.T, r http.Handler) []int {
	w := doRequest(r, http.MethodGet, "/api/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp roomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var numbers []int
	for _, room := range resp.Data {
		if room.Occupied {
			numbers = append(numbers, room.Number)
		}
	}
	return numbers
}

func TestGetRooms(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/rooms", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp roomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.DefaultLayout.Rooms(), resp.Data)
	assert.Contains(t, w.Body.String(), `{"number":101,"floor":1,"pos":1,"is_occupied":false}`)
}

func TestGetRoom(t *testing.T) {
	r, _, _ := setupRouter(t)

	testCases := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{"Existing room", "/api/rooms/305", http.StatusOK, `{"number":305,"floor":3,"pos":5,"is_occupied":false}`},
		{"Top floor room", "/api/rooms/1007", http.StatusOK, `{"number":1007,"floor":10,"pos":7,"is_occupied":false}`},
		{"Position outside top floor", "/api/rooms/1008", http.StatusBadRequest, ""},
		{"Not a number", "/api/rooms/abc", http.StatusBadRequest, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.expectedCode, w.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetRoom_NotSeeded(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.DB().Delete(&model.Room{}, "number = ?", 305).Error)
	r := NewRouter(NewHandler(s, booking.NewCoordinator(s, nil), nil, nil), testServerConfig)

	w := doRequest(r, http.MethodGet, "/api/rooms/305", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostBook(t *testing.T) {
	r, _, notifier := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/book", `{"numRooms": 3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var first bookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Success)
	assert.Equal(t, []int{101, 102, 103}, first.Booked)
	assert.NotEmpty(t, first.BookingID)

	// numRooms may also arrive as a string.
	w = doRequest(r, http.MethodPost, "/api/book", `{"numRooms": "3"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var second bookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, []int{104, 105, 106}, second.Booked)
	assert.NotEqual(t, first.BookingID, second.BookingID)

	assert.Equal(t, []int{101, 102, 103, 104, 105, 106}, occupiedNumbers(t, r))

	require.Len(t, notifier.events, 2)
	assert.Equal(t, first.BookingID, notifier.events[0].ID)
	assert.Equal(t, first.Booked, notifier.events[0].Rooms)
}

func TestPostBook_InvalidInput(t *testing.T) {
	r, _, notifier := setupRouter(t)

	for _, body := range []string{
		`{"numRooms": 0}`,
		`{"numRooms": 6}`,
		`{"numRooms": -1}`,
		`{"numRooms": 2.5}`,
		`{"numRooms": "two"}`,
		`{}`,
		`not json`,
	} {
		t.Run(body, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/book", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	assert.Empty(t, occupiedNumbers(t, r))
	assert.Empty(t, notifier.events)
}

func TestPostBook_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Insufficient capacity",
			err:          booking.NewError(booking.ErrorStatusInsufficientCapacity, errors.New("not enough rooms available")),
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"not enough rooms available"}`,
		},
		{
			name:         "No feasible allocation",
			err:          booking.NewError(booking.ErrorStatusNoFeasibleAllocation, errors.New("unable to find a suitable set of 2 rooms")),
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"unable to find a suitable set of 2 rooms"}`,
		},
		{
			name:         "Storage failure hides the cause",
			err:          booking.NewError(booking.ErrorStatusStorageFailure, errors.New("DB Connection Lost")),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"failed to book rooms"}`,
		},
		{
			name:         "Unexpected error",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"failed to book rooms"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			h := NewHandler(nil, stubBooker{err: tc.err}, nil, nil).WithNotifier(notifier)
			r := NewRouter(h, testServerConfig)

			w := doRequest(r, http.MethodPost, "/api/book", `{"numRooms": 2}`)
			assert.Equal(t, tc.expectedCode, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
			assert.Empty(t, notifier.events)
		})
	}
}

func TestPostBook_FlushesRoomCache(t *testing.T) {
	r, _, _ := setupRouter(t)

	// Warm the cache.
	assert.Empty(t, occupiedNumbers(t, r))
	w := doRequest(r, http.MethodGet, "/api/rooms", "")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = doRequest(r, http.MethodPost, "/api/book", `{"numRooms": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/rooms", "")
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, []int{101, 102}, occupiedNumbers(t, r))
}

func TestPostBook_Concurrent(t *testing.T) {
	r, _, _ := setupRouter(t)

	const callers = 12
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		booked []int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := doRequest(r, http.MethodPost, "/api/book", `{"numRooms": 5}`)
			if !assert.Equal(t, http.StatusOK, w.Code) {
				return
			}
			var resp bookResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			mu.Lock()
			booked = append(booked, resp.Booked...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, n := range booked {
		assert.False(t, seen[n], "room %d booked twice", n)
		seen[n] = true
	}
	assert.Len(t, booked, callers*5)
	assert.ElementsMatch(t, booked, occupiedNumbers(t, r))
}

func TestPostResetAndRandom(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/book", `{"numRooms": 4}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"All rooms reset"}`, w.Body.String())
	assert.Empty(t, occupiedNumbers(t, r))

	w = doRequest(r, http.MethodPost, "/api/random", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message  string `json:"message"`
		Occupied int    `json:"occupied"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Random occupancy generated", resp.Message)
	assert.Len(t, occupiedNumbers(t, r), resp.Occupied)
}
