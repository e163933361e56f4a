package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Id       int32  `parquet:"name=id, type=INT32"`
	Name     string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Untagged string
	hidden   string
}

func TestParquetTagToKeyValue(t *testing.T) {
	props := ParquetTagToKeyValue("name=name, type=BYTE_ARRAY, convertedtype=UTF8")
	assert.Equal(t, map[string]string{
		"name":          "name",
		"type":          "BYTE_ARRAY",
		"convertedtype": "UTF8",
	}, props)
}

func TestParquetTagToKeyValueSkipsMalformedPairs(t *testing.T) {
	props := ParquetTagToKeyValue("name=id,,broken, =x")
	assert.Equal(t, map[string]string{"name": "id"}, props)
}

func TestColumnNames(t *testing.T) {
	fields := GetFields(row{hidden: "x"})
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"id", "name", "Untagged"}, ColumnNames(fields))
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"name":"bulbasaur"}`))
		case "/broken":
			_, _ = w.Write([]byte(`{`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	var target struct {
		Name string `json:"name"`
	}
	require.NoError(t, GetJSON(context.Background(), server.Client(), server.URL+"/ok", &target))
	assert.Equal(t, "bulbasaur", target.Name)

	err := GetJSON(context.Background(), server.Client(), server.URL+"/missing", &target)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.True(t, IsNotFound(err))

	err = GetJSON(context.Background(), server.Client(), server.URL+"/broken", &target)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
