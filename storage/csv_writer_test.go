package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"huispedia-scraper/models"
)

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "properties.csv")

	w, err := NewCSVWriter(path)
	assert.NoError(t, err)

	prop := models.New("https://huispedia.nl/amsterdam/1012ab/damstraat/1")
	prop.ListingID = "amsterdam-1012ab-damstraat-1"
	prop.StreetAddress = "Damstraat 1"
	prop.Price = models.IntPtr(310000)
	prop.PriceType = "k.k."

	assert.NoError(t, w.Write([]*models.Property{prop}))
	assert.NoError(t, w.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, models.FieldNames(), rows[0])

	byName := map[string]string{}
	for i, name := range rows[0] {
		byName[name] = rows[1][i]
	}
	assert.Equal(t, "https://huispedia.nl/amsterdam/1012ab/damstraat/1", byName["url"])
	assert.Equal(t, "Damstraat 1", byName["street_address"])
	assert.Equal(t, "310000", byName["price"])
	assert.Equal(t, "k.k.", byName["price_type"])
	// Absent numbers become empty cells, not placeholders.
	assert.Equal(t, "", byName["living_area"])
}

func TestJSONWriterWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.json")

	w, err := NewJSONWriter(path)
	assert.NoError(t, err)

	prop := models.New("https://huispedia.nl/utrecht/3511ab/oudegracht/10")
	prop.Rooms = models.IntPtr(4)

	assert.NoError(t, w.Write([]*models.Property{prop}))
	assert.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"url": "https://huispedia.nl/utrecht/3511ab/oudegracht/10"`)
	assert.Contains(t, string(data), `"rooms": 4`)
}
