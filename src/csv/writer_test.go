package csv

import (
	"io"
	"testing"

	"github.com/BielosX/wombat/pokenat/src/parquet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRendersParquetColumns(t *testing.T) {
	w := NewWriter[parquet.PokedexEntry]()
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(parquet.PokedexEntry{
		Id:          25,
		Name:        "pikachu",
		NameEn:      "pikachu",
		NameFr:      "pikachu",
		Pokedex:     "kanto",
		EntryNumber: 25,
		Sprite:      "https://example.org/25.png",
	}))
	require.NoError(t, w.Finish())

	data, err := io.ReadAll(w.BufferReader())
	require.NoError(t, err)
	assert.Equal(t,
		"id,name,name_en,name_fr,pokedex,entry_number,sprite\n"+
			"25,pikachu,pikachu,pikachu,kanto,25,https://example.org/25.png\n",
		string(data))
	assert.Equal(t, len(data), w.Size())
}
