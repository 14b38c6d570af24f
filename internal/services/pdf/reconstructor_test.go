package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/models"
)

func threePageDocument() *models.OcrDocument {
	doc := &models.OcrDocument{}
	for p := 1; p <= 3; p++ {
		doc.Pages = append(doc.Pages, models.OcrPage{
			Number: p,
			Lines: []models.OcrLine{
				{Text: "OPĆINSKI SUD U ZAGREBU", Confidence: 0.95,
					BoundingBox: models.BoundingBox{Left: 0.30, Top: 0.05, Width: 0.40, Height: 0.02}},
				{Text: "Presuda u ime Republike Hrvatske", Confidence: 0.94,
					BoundingBox: models.BoundingBox{Left: 0.10, Top: 0.15, Width: 0.60, Height: 0.015}},
			},
		})
	}
	return doc
}

func TestRenderAndInspectRoundTrip(t *testing.T) {
	logger := common.GetLogger()

	data, err := NewReconstructor(logger).Render(threePageDocument())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	info, err := NewInspector(logger).Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, 3, info.PageCount)
	assert.False(t, info.IsEncrypted)
	assert.Equal(t, int64(len(data)), info.FileSize)
}

func TestRenderEmptyDocumentFails(t *testing.T) {
	_, err := NewReconstructor(common.GetLogger()).Render(&models.OcrDocument{})
	require.Error(t, err)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := NewInspector(common.GetLogger()).Inspect([]byte("definitely not a pdf"))
	require.Error(t, err)
}

func TestRenderSkipsEmptyLines(t *testing.T) {
	doc := &models.OcrDocument{Pages: []models.OcrPage{{
		Number: 1,
		Lines: []models.OcrLine{
			{Text: "", Confidence: 0.1},
			{Text: "sadržaj", Confidence: 0.9,
				BoundingBox: models.BoundingBox{Left: 0.1, Top: 0.1, Width: 0.3, Height: 0.02}},
		},
	}}}

	data, err := NewReconstructor(common.GetLogger()).Render(doc)
	require.NoError(t, err)

	info, err := NewInspector(common.GetLogger()).Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, 1, info.PageCount)
}
