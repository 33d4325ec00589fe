package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carepath/pkg/requestcontext"
	"carepath/pkg/testutil"
)

func TestRequestContext(t *testing.T) {
	var gotActor string
	var gotTime time.Time
	handler := RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = requestcontext.Actor(r.Context())
		gotTime = requestcontext.Now(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("forwards the actor header", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/")
		req.Header.Set("X-Carepath-Actor", "coordinator-7")

		before := time.Now().UTC()
		rr := testutil.DoRequest(handler, req)
		testutil.AssertStatus(t, rr, http.StatusNoContent)

		assert.Equal(t, "coordinator-7", gotActor)
		assert.False(t, gotTime.Before(before))
		assert.False(t, gotTime.After(time.Now().UTC()))
	})

	t.Run("falls back to anonymous", func(t *testing.T) {
		rr := testutil.DoRequest(handler, testutil.NewRequest(t, http.MethodGet, "/"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.Equal(t, "anonymous", gotActor)
	})
}
