package esx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

func TestEncode_RequiresProjectName(t *testing.T) {
	enc := NewEncoder()

	t.Run("empty name", func(t *testing.T) {
		g := sampleGraph()
		g.Project.Name = ""
		out, err := enc.Encode(g, domain.EncodeOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
		assert.Nil(t, out)
	})

	t.Run("whitespace name", func(t *testing.T) {
		g := sampleGraph()
		g.Project.Name = "   "
		_, err := enc.Encode(g, domain.EncodeOptions{})
		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})

	t.Run("nil graph", func(t *testing.T) {
		_, err := enc.Encode(nil, domain.EncodeOptions{})
		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})
}

func TestEncode_SectionOrder(t *testing.T) {
	out, err := NewEncoder().Encode(sampleGraph(), domain.EncodeOptions{IncludePhotos: true})
	require.NoError(t, err)
	doc := string(out)

	require.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	sections := []string{"<ESX version=\"1.0\">", "<ProjectInfo>", "<InsuredInfo>", "<AdjusterInfo>", "<Estimate>", "<Photos>", "</ESX>"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(doc, s)
		require.NotEqual(t, -1, idx, "missing %s", s)
		assert.Greater(t, idx, last, "%s out of order", s)
		last = idx
	}
}

func TestEncode_TotalIsSumOfAllLineItems(t *testing.T) {
	g := &domain.ProjectGraph{
		Project: domain.Project{Name: "Totals"},
		Levels:  []domain.Level{{ID: "l1", Name: "Main"}},
		Rooms: []domain.Room{
			{ID: "r1", LevelID: domain.StringPtr("l1"), Name: "A"},
			{ID: "r2", LevelID: domain.StringPtr("l1"), Name: "B"},
		},
		LineItems: []domain.LineItem{
			{RoomID: domain.StringPtr("r1"), Selector: "X", Total: 100.10},
			{RoomID: domain.StringPtr("r2"), Selector: "Y", Total: 200.20},
			{Selector: "Z", Total: 50.05},
		},
	}

	out, err := NewEncoder().Encode(g, domain.EncodeOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<TotalAmount>350.35</TotalAmount>")
}

func TestEncode_NumberFormatting(t *testing.T) {
	out, err := NewEncoder().Encode(sampleGraph(), domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "<Quantity>120.00</Quantity>")
	assert.Contains(t, doc, "<UnitPrice>2.50</UnitPrice>")
	assert.Contains(t, doc, "<Total>44.55</Total>")
	assert.Contains(t, doc, "<SquareFeet>0.00</SquareFeet>")
	assert.Contains(t, doc, "<HeightFT>8.0000</HeightFT>")
	assert.Contains(t, doc, "<HeightFT>9.0000</HeightFT>")
}

func TestEncode_AbsentFieldsEmittedAsDefaults(t *testing.T) {
	out, err := NewEncoder().Encode(sampleGraph(), domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	// Hallway has only a height.
	assert.Contains(t, doc, "<SquareFeet>0.00</SquareFeet>")
	// Adjuster has no phone or email.
	assert.Contains(t, doc, "<Phone/>")
	assert.Contains(t, doc, "<Email/>")
	assert.Contains(t, doc, "<DateModified/>")
}

func TestEncode_LevelsKeepCallerOrder(t *testing.T) {
	g := &domain.ProjectGraph{
		Project: domain.Project{Name: "Order"},
		Levels: []domain.Level{
			{ID: "b", Name: "Upper", Position: 2},
			{ID: "a", Name: "Basement", Label: "Lower Level", Position: 0},
		},
	}

	out, err := NewEncoder().Encode(g, domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	upper := strings.Index(doc, `<Level name="Upper" label="Upper">`)
	basement := strings.Index(doc, `<Level name="Basement" label="Lower Level">`)
	require.NotEqual(t, -1, upper)
	require.NotEqual(t, -1, basement)
	assert.Less(t, upper, basement)
	assert.NotContains(t, doc, FallbackLevelName)
}

func TestEncode_FallbackGrouping(t *testing.T) {
	out, err := NewEncoder().Encode(sampleGraph(), domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	fallback := strings.Index(doc, `<Level name="Unassigned" label="Unassigned" synthetic="true">`)
	require.NotEqual(t, -1, fallback)
	assert.Greater(t, fallback, strings.Index(doc, `<Level name="Main Floor"`))

	general := strings.Index(doc, `<Room name="General" category="" synthetic="true">`)
	shed := strings.Index(doc, `<Room name="Shed" category="">`)
	assert.Greater(t, general, fallback)
	assert.Greater(t, shed, general)
	assert.Equal(t, 2, strings.Count(doc, "synthetic="))
}

func TestEncode_AttributeWhitespaceIsReferenced(t *testing.T) {
	g := &domain.ProjectGraph{
		Project: domain.Project{Name: "Attrs"},
		Levels:  []domain.Level{{ID: "l", Name: "Main\tFloor"}},
		Rooms:   []domain.Room{{ID: "r", LevelID: domain.StringPtr("l"), Name: "Den", Category: "Water\r\nDamage"}},
	}

	out, err := NewEncoder().Encode(g, domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `name="Main&#x9;Floor"`)
	assert.Contains(t, doc, `category="Water&#xD;&#xA;Damage"`)
}

func TestEncode_DanglingReferencesAreUnattached(t *testing.T) {
	g := &domain.ProjectGraph{
		Project: domain.Project{Name: "Dangling"},
		Rooms:   []domain.Room{{ID: "r1", LevelID: domain.StringPtr("missing"), Name: "Porch"}},
		LineItems: []domain.LineItem{
			{RoomID: domain.StringPtr("nowhere"), Selector: "ORPHAN"},
		},
	}

	out, err := NewEncoder().Encode(g, domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `synthetic="true"`)
	assert.Contains(t, doc, `<Room name="Porch"`)
	assert.Contains(t, doc, "<Selector>ORPHAN</Selector>")
}

func TestEncode_Photos(t *testing.T) {
	enc := NewEncoder()

	t.Run("omitted unless requested", func(t *testing.T) {
		out, err := enc.Encode(sampleGraph(), domain.EncodeOptions{IncludePhotos: false})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "<Photos>")
	})

	t.Run("omitted when there are none", func(t *testing.T) {
		g := sampleGraph()
		g.Photos = nil
		out, err := enc.Encode(g, domain.EncodeOptions{IncludePhotos: true})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "<Photos>")
	})

	t.Run("room names resolved with fallback", func(t *testing.T) {
		out, err := enc.Encode(sampleGraph(), domain.EncodeOptions{IncludePhotos: true})
		require.NoError(t, err)
		doc := string(out)
		assert.Contains(t, doc, "<Filename>kitchen.jpg</Filename>\n      <Room>Kitchen</Room>")
		assert.Contains(t, doc, "<Filename>misc.jpg</Filename>\n      <Room>General</Room>")
		assert.Contains(t, doc, "<TakenAt>2026-02-12T09:30:00Z</TakenAt>")
	})
}

func TestEncode_EscapesReservedCharacters(t *testing.T) {
	g := sampleGraph()
	g.Project.Name = `Smith & Sons "Main" <East>`
	g.Rooms[0].Name = `Kid's Room`

	out, err := NewEncoder().Encode(g, domain.EncodeOptions{})
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "<Name>Smith &amp; Sons &quot;Main&quot; &lt;East&gt;</Name>")
	assert.Contains(t, doc, `<Room name="Kid&apos;s Room"`)
	assert.NotContains(t, doc, "Smith & Sons")
}

func TestEncode_Deterministic(t *testing.T) {
	enc := NewEncoder()
	a, err := enc.Encode(sampleGraph(), domain.EncodeOptions{IncludePhotos: true})
	require.NoError(t, err)
	b, err := enc.Encode(sampleGraph(), domain.EncodeOptions{IncludePhotos: true})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
