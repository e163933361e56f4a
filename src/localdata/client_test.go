package localdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/BielosX/wombat/pokenat/src/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientPassesBodiesThrough(t *testing.T) {
	var dataHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/data.json" {
			dataHits.Add(1)
		}
		switch r.URL.Path {
		case "/api/index.json":
			_, _ = w.Write([]byte(`{"pokedexes":[{"name":"kanto","count":151}],"total":151}`))
		case "/api/data.json":
			_, _ = w.Write([]byte(`[{"id":1,"name":"bulbasaur","extra":{"kept":true}}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/", server.Client(), zap.NewNop().Sugar())

	index, err := client.GetIndex(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"pokedexes":[{"name":"kanto","count":151}],"total":151}`, string(index))

	for i := 0; i < 2; i++ {
		data, err := client.GetPokedex(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1,"name":"bulbasaur","extra":{"kept":true}}]`, string(data))
	}
	assert.Equal(t, int32(2), dataHits.Load())
}

func TestClientPropagatesFailures(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewClient(server.URL+"/api", nil, zap.NewNop().Sugar())
	_, err := client.GetIndex(context.Background())
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}
