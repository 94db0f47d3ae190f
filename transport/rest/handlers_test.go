package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/repository"
	"github.com/rocketscienceinc/boardgames/internal/service"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
)

func newTestServer(t *testing.T, kind entity.GameKind) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := usecase.NewGameManager(logger,
		repository.NewSessionRepository(),
		service.NewBotService(rand.New(rand.NewSource(1))),
		nil,
		usecase.Settings{Kind: kind, Level: entity.LevelMedium},
		usecase.WithAfterFunc(func(time.Duration, func()) {}),
		usecase.WithIDGenerator(func() string { return "s1" }),
	)

	server := httptest.NewServer(NewRouter(logger, manager))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func xiangqiMove(fx, fy, tx, ty int) entity.MoveInput {
	from := entity.Coord{X: fx, Y: fy}
	return entity.MoveInput{From: &from, To: entity.Coord{X: tx, Y: ty}}
}

func TestPing(t *testing.T) {
	server := newTestServer(t, entity.KindGo)

	status, body := do(t, http.MethodGet, server.URL+"/ping", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", string(body))
}

func TestSessionAPI_Xiangqi(t *testing.T) {
	server := newTestServer(t, entity.KindXiangqi)
	base := server.URL + "/api/sessions"

	// Given: a new hot seat session
	status, body := do(t, http.MethodPost, base, usecase.SessionRequest{})
	require.Equal(t, http.StatusCreated, status)
	var frame entity.Frame
	require.NoError(t, json.Unmarshal(body, &frame))
	assert.Equal(t, "s1", frame.SessionID)
	assert.Equal(t, "red", frame.Status.Turn)

	t.Run("Lists legal destinations of a piece", func(t *testing.T) {
		status, body := do(t, http.MethodGet, base+"/s1/legal?x=1&y=9", nil)

		require.Equal(t, http.StatusOK, status)
		var resp movesResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.ElementsMatch(t, []entity.Coord{{X: 0, Y: 7}, {X: 2, Y: 7}}, resp.Moves)
	})

	t.Run("Bad coordinates are a bad request", func(t *testing.T) {
		status, _ := do(t, http.MethodGet, base+"/s1/legal?x=a&y=9", nil)

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Illegal move is unprocessable and carries the reason", func(t *testing.T) {
		status, body := do(t, http.MethodPost, base+"/s1/move", xiangqiMove(0, 9, 1, 8))

		require.Equal(t, http.StatusUnprocessableEntity, status)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, apperror.ReasonInvalidDestination, resp.Reason)
		require.NotNil(t, resp.Frame)
		assert.Equal(t, uint64(0), resp.Frame.Version)
	})

	t.Run("Legal move is applied and recorded", func(t *testing.T) {
		status, body := do(t, http.MethodPost, base+"/s1/move", xiangqiMove(7, 7, 4, 7))

		require.Equal(t, http.StatusOK, status)
		var frame entity.Frame
		require.NoError(t, json.Unmarshal(body, &frame))
		assert.Equal(t, "black", frame.Status.Turn)
		assert.Equal(t, "rC", frame.Cells[7][4])

		status, body = do(t, http.MethodGet, base+"/s1/history", nil)
		require.Equal(t, http.StatusOK, status)
		var history historyResponse
		require.NoError(t, json.Unmarshal(body, &history))
		assert.Equal(t, []string{"r: C h3-e3"}, history.Moves)
	})

	t.Run("Pass is not supported", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, base+"/s1/pass", nil)

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Undo through a key command", func(t *testing.T) {
		status, body := do(t, http.MethodPost, base+"/s1/command", commandRequest{Key: "u"})

		require.Equal(t, http.StatusOK, status)
		var frame entity.Frame
		require.NoError(t, json.Unmarshal(body, &frame))
		assert.Equal(t, "Undid move", frame.Message)
		assert.Equal(t, "red", frame.Status.Turn)
	})

	t.Run("Unknown key is a bad request", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, base+"/s1/command", commandRequest{Key: "z"})

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Deleted session is gone", func(t *testing.T) {
		status, _ := do(t, http.MethodDelete, base+"/s1", nil)
		require.Equal(t, http.StatusNoContent, status)

		status, _ = do(t, http.MethodGet, base+"/s1", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestSessionAPI_Go(t *testing.T) {
	server := newTestServer(t, entity.KindGo)
	base := server.URL + "/api/sessions"

	status, _ := do(t, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, status)

	t.Run("Two passes finish the game", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, base+"/s1/pass", nil)
		require.Equal(t, http.StatusOK, status)

		status, body := do(t, http.MethodPost, base+"/s1/pass", nil)
		require.Equal(t, http.StatusOK, status)

		var frame entity.Frame
		require.NoError(t, json.Unmarshal(body, &frame))
		assert.Equal(t, entity.StatusFinished, frame.Status.Terminal.Status)
		assert.Equal(t, "Final B:0 W:0", frame.Message)
	})

	t.Run("Moves after the end conflict", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, base+"/s1/move", entity.MoveInput{To: entity.Coord{X: 3, Y: 3}})

		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("Restart reopens the board", func(t *testing.T) {
		status, body := do(t, http.MethodPost, base+"/s1/restart", nil)
		require.Equal(t, http.StatusOK, status)

		var frame entity.Frame
		require.NoError(t, json.Unmarshal(body, &frame))
		assert.Equal(t, entity.StatusOngoing, frame.Status.Terminal.Status)
		assert.Equal(t, "black", frame.Status.Turn)
	})

	t.Run("Unknown session is not found", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, base+"/nope/undo", nil)

		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Malformed body is a bad request", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, base+"/s1/move", bytes.NewReader([]byte("{")))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
