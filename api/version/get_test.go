package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		deps            *types.Dependencies
		expectedVersion string
	}{
		{name: "configured version", deps: &types.Dependencies{Version: "1.2.3"}, expectedVersion: "1.2.3"},
		{name: "empty version", deps: &types.Dependencies{}, expectedVersion: "dev"},
		{name: "nil dependencies", deps: nil, expectedVersion: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Get(tt.deps)(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var response types.VersionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "Dialogue QC API", response.Name)
			assert.Equal(t, tt.expectedVersion, response.Version)
			assert.Equal(t, "running", response.Status)
		})
	}
}
