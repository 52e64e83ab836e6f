package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

func TestRead_Success(t *testing.T) {
	data := []byte(`Room,Selector,Description,Qty,Unit,Unit Price,Total,Category
Kitchen,DRY1/2,"Drywall, hung",120,SF,$2.50,300,DRY
,WTR,Water extraction,2,HR,60,,WTR
`)

	items, err := NewReader().Read(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, domain.ParsedLineItem{
		Selector:    "DRY1/2",
		Description: "Drywall, hung",
		Quantity:    120,
		Unit:        "SF",
		UnitPrice:   2.5,
		Total:       300,
		Category:    "DRY",
		RoomName:    "Kitchen",
		RoomIndex:   -1,
	}, items[0])

	assert.Equal(t, "", items[1].RoomName)
	assert.Equal(t, 120.0, items[1].Total, "total derived from quantity and price")
}

func TestRead_HeaderOrderAndAliases(t *testing.T) {
	data := []byte("total;ignored\n")
	_, err := NewReader().Read(data)
	assert.ErrorIs(t, err, domain.ErrMissingHeader)

	data = []byte("CATEGORY, price ,desc,QUANTITY,room_name\nPNT,1.10,Paint,40,Hall\n")
	items, err := NewReader().Read(data)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Paint", items[0].Description)
	assert.Equal(t, "PNT", items[0].Category)
	assert.Equal(t, 1.1, items[0].UnitPrice)
	assert.Equal(t, 40.0, items[0].Quantity)
	assert.Equal(t, "Hall", items[0].RoomName)
	assert.Equal(t, 44.0, items[0].Total)
}

func TestRead_MixedCellTypes(t *testing.T) {
	data := []byte("Selector,Quantity,Unit Price,Total\n100,n/a,,oops\n")

	items, err := NewReader().Read(data)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "100", items[0].Selector, "numeric selector kept as text")
	assert.Equal(t, 0.0, items[0].Quantity)
	assert.Equal(t, 0.0, items[0].UnitPrice)
	assert.Equal(t, 0.0, items[0].Total)
}

func TestRead_SkipsBlankRowsAndShortRecords(t *testing.T) {
	data := []byte("Selector,Description,Quantity\n,,\nABC\n\n")

	items, err := NewReader().Read(data)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ABC", items[0].Selector)
	assert.Equal(t, "", items[0].Description)
}

func TestRead_Empty(t *testing.T) {
	_, err := NewReader().Read(nil)
	assert.ErrorIs(t, err, domain.ErrMissingHeader)
}
