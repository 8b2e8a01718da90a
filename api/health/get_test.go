package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
	"github.com/killallgit/dialogue-qc/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		setupDeps         func() *types.Dependencies
		expectedStatus    int
		expectedHealth    string
		expectedDBStatus  string
		expectedConnected bool
	}{
		{
			name: "healthy with database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				return &types.Dependencies{DB: db}
			},
			expectedStatus:    http.StatusOK,
			expectedHealth:    "healthy",
			expectedDBStatus:  "connected",
			expectedConnected: true,
		},
		{
			name: "healthy without database",
			setupDeps: func() *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedStatus:   http.StatusOK,
			expectedHealth:   "healthy",
			expectedDBStatus: "not configured",
		},
		{
			name: "nil dependencies",
			setupDeps: func() *types.Dependencies {
				return nil
			},
			expectedStatus:   http.StatusOK,
			expectedHealth:   "healthy",
			expectedDBStatus: "not configured",
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db}
			},
			expectedStatus:   http.StatusServiceUnavailable,
			expectedHealth:   "unhealthy",
			expectedDBStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			deps := tt.setupDeps()
			Get(deps)(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response types.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.NotEmpty(t, response.Timestamp)
			assert.Equal(t, tt.expectedDBStatus, response.Database["status"])
			assert.Equal(t, tt.expectedConnected, response.Database["connected"])

			if deps != nil && deps.DB != nil {
				_ = deps.DB.Close()
			}
		})
	}
}
