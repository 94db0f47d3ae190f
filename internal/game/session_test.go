package game

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/xiangqi"
)

var errRendererDown = errors.New("renderer down")

type mockRenderer struct {
	mock.Mock
}

func (that *mockRenderer) Render(ctx context.Context, frame entity.Frame) error {
	args := that.Called(ctx, frame)
	return args.Error(0)
}

type mockBot struct {
	mock.Mock
}

func (that *mockBot) ChooseMove(board xiangqi.Board, color xiangqi.Color, level entity.Level) (xiangqi.Move, bool) {
	args := that.Called(board, color, level)
	return args.Get(0).(xiangqi.Move), args.Bool(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func coord(x, y int) entity.Coord {
	return entity.Coord{X: x, Y: y}
}

func xiangqiMove(fx, fy, tx, ty int) entity.MoveInput {
	from := coord(fx, fy)
	return entity.MoveInput{From: &from, To: coord(tx, ty)}
}

func newGoSession(t *testing.T, renderer Renderer) *Session {
	t.Helper()

	module, err := NewModule(entity.KindGo, Options{})
	require.NoError(t, err)
	return NewSession(testLogger(), "go-1", module, renderer)
}

func newXiangqiSession(t *testing.T, bot *mockBot) *Session {
	t.Helper()

	opts := Options{Level: entity.LevelMedium}
	if bot != nil {
		opts.VsAI = true
		opts.Bot = bot
	}
	module, err := NewModule(entity.KindXiangqi, opts)
	require.NoError(t, err)
	return NewSession(testLogger(), "xq-1", module, nil)
}

func TestNewModule(t *testing.T) {
	t.Run("Rejects an unknown kind", func(t *testing.T) {
		_, err := NewModule(entity.GameKind("chess"), Options{})

		assert.ErrorIs(t, err, apperror.ErrUnknownGameKind)
	})

	t.Run("Computer opponent needs a bot", func(t *testing.T) {
		_, err := NewModule(entity.KindXiangqi, Options{VsAI: true})

		assert.ErrorIs(t, err, ErrBotRequired)
	})
}

func TestSession_ApplyMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Renders a new version after a stone is placed", func(t *testing.T) {
		// Given: a Go session with a renderer expecting the first frame
		renderer := &mockRenderer{}
		renderer.On("Render", mock.Anything, mock.MatchedBy(func(frame entity.Frame) bool {
			return frame.Version == 1 && frame.Cells[3][3] == "B" && frame.Status.Turn == "white"
		})).Return(nil).Once()
		session := newGoSession(t, renderer)

		// When
		frame, err := session.ApplyMove(ctx, entity.MoveInput{To: coord(3, 3)})

		// Then
		require.NoError(t, err)
		assert.Equal(t, uint64(1), frame.Version)
		assert.Equal(t, entity.KindGo, frame.Kind)
		assert.Equal(t, "go-1", frame.SessionID)
		require.NotNil(t, frame.Status.LastMove)
		assert.Equal(t, coord(3, 3), frame.Status.LastMove.To)
		renderer.AssertExpectations(t)
	})

	t.Run("Illegal move keeps the version and explains why", func(t *testing.T) {
		// Given: white guards the corner
		session := newGoSession(t, nil)
		for _, at := range []entity.Coord{coord(10, 10), coord(1, 0), coord(10, 11), coord(0, 1)} {
			_, err := session.ApplyMove(ctx, entity.MoveInput{To: at})
			require.NoError(t, err)
		}

		// When: black tries the suicide point
		frame, err := session.ApplyMove(ctx, entity.MoveInput{To: coord(0, 0)})

		// Then
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		reason, ok := apperror.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ReasonSuicide, reason)
		assert.Equal(t, uint64(4), frame.Version)
		assert.Equal(t, "Illegal: suicide move", frame.Message)
		assert.Equal(t, "", frame.Cells[0][0])
	})

	t.Run("Render failure does not fail the move", func(t *testing.T) {
		renderer := &mockRenderer{}
		renderer.On("Render", mock.Anything, mock.Anything).Return(errRendererDown).Once()
		session := newGoSession(t, renderer)

		_, err := session.ApplyMove(ctx, entity.MoveInput{To: coord(3, 3)})

		require.NoError(t, err)
		assert.Equal(t, uint64(1), session.Version())
		renderer.AssertExpectations(t)
	})

	t.Run("Captures are reported in the message", func(t *testing.T) {
		session := newGoSession(t, nil)
		moves := []entity.Coord{
			coord(3, 3), coord(2, 3),
			coord(10, 10), coord(4, 3),
			coord(10, 11), coord(3, 2),
			coord(10, 12),
		}
		for _, at := range moves {
			_, err := session.ApplyMove(ctx, entity.MoveInput{To: at})
			require.NoError(t, err)
		}

		frame, err := session.ApplyMove(ctx, entity.MoveInput{To: coord(3, 4)})

		require.NoError(t, err)
		assert.Equal(t, "Captured 1", frame.Message)
		assert.Equal(t, 1, frame.Status.Captures["white"])
	})

	t.Run("Xiangqi move without a source square is rejected", func(t *testing.T) {
		session := newXiangqiSession(t, nil)

		_, err := session.ApplyMove(ctx, entity.MoveInput{To: coord(4, 7)})

		reason, ok := apperror.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ReasonNoPiece, reason)
	})

	t.Run("Xiangqi capture shows up in status and history", func(t *testing.T) {
		session := newXiangqiSession(t, nil)

		frame, err := session.ApplyMove(ctx, xiangqiMove(1, 7, 1, 0))

		require.NoError(t, err)
		assert.Equal(t, "rC", frame.Cells[0][1])
		assert.Equal(t, 1, frame.Status.Captures["red"])
		assert.Equal(t, "black", frame.Status.Turn)
		require.NotNil(t, frame.Status.LastMove)
		require.NotNil(t, frame.Status.LastMove.From)
		assert.Equal(t, coord(1, 7), *frame.Status.LastMove.From)
		assert.Equal(t, []string{"r: C b3xb10"}, session.History())
	})
}

func TestSession_Commands(t *testing.T) {
	ctx := context.Background()

	t.Run("Two passes end a Go game with the final score", func(t *testing.T) {
		session := newGoSession(t, nil)

		frame, err := session.HandleCommand(ctx, "p")
		require.NoError(t, err)
		assert.Equal(t, "Pass", frame.Message)
		assert.Equal(t, 1, frame.Status.Passes)

		frame, err = session.HandleCommand(ctx, "pass")
		require.NoError(t, err)

		assert.Equal(t, "Final B:0 W:0", frame.Message)
		assert.Equal(t, entity.Terminal{Status: entity.StatusFinished, Winner: entity.WinnerDraw, Reason: "two passes"}, frame.Status.Terminal)

		_, err = session.ApplyMove(ctx, entity.MoveInput{To: coord(3, 3)})
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Undo reopens the game after the final pass", func(t *testing.T) {
		session := newGoSession(t, nil)
		_, err := session.Pass(ctx)
		require.NoError(t, err)
		_, err = session.Pass(ctx)
		require.NoError(t, err)

		frame, err := session.HandleCommand(ctx, "u")

		require.NoError(t, err)
		assert.Equal(t, "Undid pass", frame.Message)
		assert.False(t, frame.Status.Terminal.IsFinished())
		assert.Equal(t, uint64(3), frame.Version)
	})

	t.Run("Undo with no history changes nothing", func(t *testing.T) {
		session := newXiangqiSession(t, nil)

		frame := session.Undo(ctx)

		assert.Equal(t, uint64(0), frame.Version)
		assert.Equal(t, "", frame.Message)
	})

	t.Run("Xiangqi does not support pass", func(t *testing.T) {
		session := newXiangqiSession(t, nil)

		frame, err := session.HandleCommand(ctx, "p")

		assert.ErrorIs(t, err, apperror.ErrPassNotSupported)
		assert.Equal(t, uint64(0), frame.Version)
	})

	t.Run("Unknown key is reported", func(t *testing.T) {
		session := newGoSession(t, nil)

		_, err := session.HandleCommand(ctx, "x")

		assert.ErrorIs(t, err, apperror.ErrUnknownCommand)
	})

	t.Run("Restart clears the board and bumps the version", func(t *testing.T) {
		session := newXiangqiSession(t, nil)
		_, err := session.ApplyMove(ctx, xiangqiMove(7, 7, 4, 7))
		require.NoError(t, err)

		frame, err := session.HandleCommand(ctx, "r")

		require.NoError(t, err)
		assert.Equal(t, uint64(2), frame.Version)
		assert.Equal(t, "Ready", frame.Message)
		assert.Equal(t, "red", frame.Status.Turn)
		assert.Empty(t, session.History())
	})
}

func TestSession_LegalMovesFrom(t *testing.T) {
	t.Run("Go answers for one intersection", func(t *testing.T) {
		session := newGoSession(t, nil)
		_, err := session.ApplyMove(context.Background(), entity.MoveInput{To: coord(3, 3)})
		require.NoError(t, err)

		assert.Equal(t, []entity.Coord{coord(4, 4)}, session.LegalMovesFrom(coord(4, 4)))
		assert.Empty(t, session.LegalMovesFrom(coord(3, 3)))
	})

	t.Run("Xiangqi lists the piece destinations", func(t *testing.T) {
		session := newXiangqiSession(t, nil)

		assert.ElementsMatch(t, []entity.Coord{coord(0, 7), coord(2, 7)}, session.LegalMovesFrom(coord(1, 9)))
	})
}

func TestSession_BotMove(t *testing.T) {
	ctx := context.Background()
	reply := xiangqi.Move{From: coord(1, 0), To: coord(2, 2)}

	t.Run("Computer replies when the version still matches", func(t *testing.T) {
		// Given: red has moved against the computer
		bot := &mockBot{}
		bot.On("ChooseMove", mock.Anything, xiangqi.Black, entity.LevelMedium).Return(reply, true).Once()
		session := newXiangqiSession(t, bot)
		_, err := session.ApplyMove(ctx, xiangqiMove(7, 7, 4, 7))
		require.NoError(t, err)

		version, pending := session.BotTurn()
		require.True(t, pending)

		// When
		frame, applied := session.ApplyBotMove(ctx, version)

		// Then
		require.True(t, applied)
		assert.Equal(t, version+1, frame.Version)
		assert.Equal(t, "red", frame.Status.Turn)
		assert.Equal(t, "bH", frame.Cells[2][2])
		_, pending = session.BotTurn()
		assert.False(t, pending)
		bot.AssertExpectations(t)
	})

	t.Run("Human cannot move for the computer", func(t *testing.T) {
		bot := &mockBot{}
		session := newXiangqiSession(t, bot)
		_, err := session.ApplyMove(ctx, xiangqiMove(7, 7, 4, 7))
		require.NoError(t, err)

		_, err = session.ApplyMove(ctx, xiangqiMove(1, 0, 2, 2))

		reason, ok := apperror.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ReasonWrongTurn, reason)
		assert.Empty(t, session.LegalMovesFrom(coord(1, 0)))
	})

	t.Run("Undo before the reply makes it stale", func(t *testing.T) {
		// Given: a bot move scheduled against the current version
		bot := &mockBot{}
		session := newXiangqiSession(t, bot)
		_, err := session.ApplyMove(ctx, xiangqiMove(7, 7, 4, 7))
		require.NoError(t, err)
		version, pending := session.BotTurn()
		require.True(t, pending)

		// When: the human takes the move back before the bot resolves
		session.Undo(ctx)
		frame, applied := session.ApplyBotMove(ctx, version)

		// Then: nothing is applied and the bot is never asked
		assert.False(t, applied)
		assert.Equal(t, version+1, frame.Version)
		assert.Empty(t, session.History())
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Restart before the reply makes it stale", func(t *testing.T) {
		bot := &mockBot{}
		session := newXiangqiSession(t, bot)
		_, err := session.ApplyMove(ctx, xiangqiMove(7, 7, 4, 7))
		require.NoError(t, err)
		version, _ := session.BotTurn()

		session.Restart(ctx)
		_, applied := session.ApplyBotMove(ctx, version)

		assert.False(t, applied)
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything, mock.Anything)
	})
}
