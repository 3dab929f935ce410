package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imei-relay/imei_relay/internal/config"
	"github.com/imei-relay/imei_relay/internal/logging"
	"github.com/imei-relay/imei_relay/internal/provider/mocks"
	"github.com/imei-relay/imei_relay/internal/routes"
)

func TestUnknownRouteRendersJSONError(t *testing.T) {
	cfg := config.Config{AppName: "test", Gateway: config.Gateway{Port: "0", AuthToken: "secret"}}
	srv, err := New(cfg, routes.Deps{Checker: mocks.NewMockChecker(gomock.NewController(t))}, logging.Discard())
	require.NoError(t, err)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEmpty(t, out["error"])
}

func TestNewFailsWithoutSecret(t *testing.T) {
	cfg := config.Config{Gateway: config.Gateway{Port: "0"}}
	_, err := New(cfg, routes.Deps{Checker: mocks.NewMockChecker(gomock.NewController(t))}, logging.Discard())
	assert.Error(t, err)
}
