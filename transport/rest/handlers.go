package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
)

var ErrBadRequest = errors.New("bad request")

type gameManager interface {
	CreateSession(ctx context.Context, req usecase.SessionRequest) (entity.Frame, error)
	GetFrame(ctx context.Context, id string) (entity.Frame, error)
	DeleteSession(ctx context.Context, id string) error

	MakeMove(ctx context.Context, id string, input entity.MoveInput) (entity.Frame, error)
	Pass(ctx context.Context, id string) (entity.Frame, error)
	Undo(ctx context.Context, id string) (entity.Frame, error)
	Restart(ctx context.Context, id string) (entity.Frame, error)
	Command(ctx context.Context, id, key string) (entity.Frame, error)

	LegalMoves(ctx context.Context, id string, at entity.Coord) ([]entity.Coord, error)
	History(ctx context.Context, id string) ([]string, error)
}

type commandRequest struct {
	Key string `json:"key"`
}

type movesResponse struct {
	Moves []entity.Coord `json:"moves"`
}

type historyResponse struct {
	Moves []string `json:"moves"`
}

type errorResponse struct {
	Error  string          `json:"error"`
	Reason apperror.Reason `json:"reason,omitempty"`
	Frame  *entity.Frame   `json:"frame,omitempty"`
}

type handlers struct {
	logger  *slog.Logger
	manager gameManager
}

func newHandlers(logger *slog.Logger, manager gameManager) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest-handlers"),
		manager: manager,
	}
}

func (that *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	var req usecase.SessionRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	frame, err := that.manager.CreateSession(r.Context(), req)
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, frame)
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	frame, err := that.manager.GetFrame(r.Context(), r.PathValue("id"))
	that.writeFrame(w, r, frame, err)
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	var input entity.MoveInput
	if err := decodeBody(r, &input); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	frame, err := that.manager.MakeMove(r.Context(), r.PathValue("id"), input)
	that.writeFrame(w, r, frame, err)
}

func (that *handlers) pass(w http.ResponseWriter, r *http.Request) {
	frame, err := that.manager.Pass(r.Context(), r.PathValue("id"))
	that.writeFrame(w, r, frame, err)
}

func (that *handlers) undo(w http.ResponseWriter, r *http.Request) {
	frame, err := that.manager.Undo(r.Context(), r.PathValue("id"))
	that.writeFrame(w, r, frame, err)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	frame, err := that.manager.Restart(r.Context(), r.PathValue("id"))
	that.writeFrame(w, r, frame, err)
}

func (that *handlers) command(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	frame, err := that.manager.Command(r.Context(), r.PathValue("id"), req.Key)
	that.writeFrame(w, r, frame, err)
}

func (that *handlers) legal(w http.ResponseWriter, r *http.Request) {
	at, err := coordFromQuery(r)
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	moves, err := that.manager.LegalMoves(r.Context(), r.PathValue("id"), at)
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	if moves == nil {
		moves = []entity.Coord{}
	}
	that.writeJSON(w, http.StatusOK, movesResponse{Moves: moves})
}

func (that *handlers) history(w http.ResponseWriter, r *http.Request) {
	records, err := that.manager.History(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, r, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, historyResponse{Moves: records})
}

// writeFrame answers with the frame, or with the error plus the unchanged frame.
func (that *handlers) writeFrame(w http.ResponseWriter, r *http.Request, frame entity.Frame, err error) {
	if err != nil {
		var current *entity.Frame
		if frame.SessionID != "" {
			current = &frame
		}
		that.writeError(w, r, err, current)
		return
	}

	that.writeJSON(w, http.StatusOK, frame)
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error, frame *entity.Frame) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	resp := errorResponse{Error: err.Error(), Frame: frame}
	if reason, ok := apperror.ReasonOf(err); ok {
		resp.Reason = reason
	}

	that.writeJSON(w, status, resp)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, apperror.ErrPassNotSupported),
		errors.Is(err, apperror.ErrUnknownCommand),
		errors.Is(err, apperror.ErrUnknownGameKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

func coordFromQuery(r *http.Request) (entity.Coord, error) {
	query := r.URL.Query()

	x, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		return entity.Coord{}, errors.Join(ErrBadRequest, err)
	}
	y, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		return entity.Coord{}, errors.Join(ErrBadRequest, err)
	}

	return entity.Coord{X: x, Y: y}, nil
}
