package middleware

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/mocks"
)

// captureService returns a logging mock that forwards every recorded entry
// to the returned channel. The global async logger is stopped so entries
// take the direct path.
func captureService(t *testing.T) (*mocks.MockLoggingService, <-chan *model.LogEntry) {
	t.Helper()
	StopAsyncLogger()

	ch := make(chan *model.LogEntry, 16)
	m := &mocks.MockLoggingService{}
	m.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		for _, e := range args.Get(1).([]*model.LogEntry) {
			ch <- e
		}
	}).Return(nil)
	return m, ch
}

func receiveEntry(t *testing.T, ch <-chan *model.LogEntry) *model.LogEntry {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no log entry recorded")
		return nil
	}
}

// asUser sets the context values JWTAuth would set.
func asUser(id primitive.ObjectID, email string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, id)
		c.Set(UserEmailKey, email)
		c.Set(UserRolesKey, roles)
		c.Set(UserClaimsKey, &dto.Claims{UserID: id, Email: email, Roles: roles})
		c.Next()
	}
}

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}
