package routes_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dasdy/monoframe/web/components"
	"github.com/dasdy/monoframe/web/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSessionsRenderContext(t *testing.T) {
	mock := &SimpleStorageMock{}
	require.NoError(t, mock.Store(pageFrame("first", 0, 0, 0, 4)))
	require.NoError(t, mock.Store(pageFrame("first", 1, 0, 0, 4)))
	require.NoError(t, mock.Store(pageFrame("second", 0, 0, 0, 4)))

	handler := routes.ServerHandler{Storage: mock}

	ctx, err := handler.BuildSessionsRenderContext()
	require.NoError(t, err)

	assert.Equal(t, []components.SessionEntry{
		{ID: "first", Frames: 2},
		{ID: "second", Frames: 1},
	}, ctx.Sessions)
}

func TestSessionsHandle(t *testing.T) {
	t.Run("should render the session list", func(t *testing.T) {
		mock := &SimpleStorageMock{}
		require.NoError(t, mock.Store(pageFrame("abc", 0, 0, 0, 4)))

		handler := routes.ServerHandler{Storage: mock}
		recorder := httptest.NewRecorder()

		handler.SessionsHandle(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "abc")
		assert.Contains(t, recorder.Body.String(), "(1 frames)")
	})

	t.Run("should report storage errors", func(t *testing.T) {
		mock := &SimpleStorageMock{ReturnError: errors.New("db down")}
		handler := routes.ServerHandler{Storage: mock}
		recorder := httptest.NewRecorder()

		handler.SessionsHandle(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "db down")
		assert.Equal(t, 1, mock.CallCount)
	})
}
