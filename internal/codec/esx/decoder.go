package esx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/estix-cli/internal/money"
)

// Ensure Decoder implements the interface.
var _ driven.DocumentDecoder = (*Decoder)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder reads ESX documents back into positional project records.
type Decoder struct{}

// NewDecoder creates a new ESX decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses data. It never panics on bad input: a document that is
// not well-formed, or has no ESX root, yields Success=false with Err set.
// Any other missing or invalid field falls back to its default.
func (d *Decoder) Decode(data []byte) *domain.ParseResult {
	data = bytes.TrimPrefix(data, utf8BOM)

	root, err := scanRoot(data)
	if err != nil {
		return failed(fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err))
	}
	if root == "" {
		return failed(fmt.Errorf("%w: expected <%s>, document has no elements", domain.ErrMissingRootElement, rootElement))
	}
	if root != rootElement {
		return failed(fmt.Errorf("%w: expected <%s>, found <%s>", domain.ErrMissingRootElement, rootElement, root))
	}

	var doc esxDocument
	if err := newXMLDecoder(data).Decode(&doc); err != nil {
		return failed(fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err))
	}

	result := &domain.ParseResult{Success: true}
	buildArena(result, &doc)
	result.Photos = decodePhotos(doc.Photos)
	resolvePhotos(result)
	result.Project = buildProject(&doc, result.LineItems)
	return result
}

func failed(err error) *domain.ParseResult {
	return &domain.ParseResult{Err: err}
}

func newXMLDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	return dec
}

// charsetReader accepts the single-byte encodings older estimating tools
// declare alongside UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}

// scanRoot checks the whole input is well-formed and returns the local
// name of its first element, or "" when there is none.
func scanRoot(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", errors.New("empty document")
	}

	dec := newXMLDecoder(data)
	root := ""
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok && root == "" {
			root = start.Name.Local
		}
	}
}

// buildArena is the first decode pass: it flattens the nesting into
// levels, rooms and line items linked by slice position.
func buildArena(result *domain.ParseResult, doc *esxDocument) {
	for li := range doc.Estimate.Levels {
		el := &doc.Estimate.Levels[li]
		levelName := textOr(el.Name, fmt.Sprintf("Level %d", li+1))
		levelIndex := len(result.Levels)
		result.Levels = append(result.Levels, domain.ParsedLevel{
			Name:      levelName,
			Label:     textOr(el.Label, levelName),
			Position:  li,
			Synthetic: isTrue(el.Synthetic),
		})

		for ri := range el.Rooms {
			er := &el.Rooms[ri]
			roomName := textOr(er.Name, fmt.Sprintf("Room %d", ri+1))
			roomIndex := len(result.Rooms)
			result.Rooms = append(result.Rooms, domain.ParsedRoom{
				Name:       roomName,
				Category:   er.Category,
				Dimensions: decodeDimensions(&er.Dimensions),
				Synthetic:  isTrue(er.Synthetic),
				LevelName:  levelName,
				LevelIndex: levelIndex,
			})

			for ii := range er.LineItems {
				result.LineItems = append(result.LineItems, decodeLineItem(&er.LineItems[ii], roomName, levelName, roomIndex))
			}
		}
	}
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func decodeDimensions(ed *esxDimensions) domain.Dimensions {
	return domain.Dimensions{
		SquareFeet:  numberOr(ed.SquareFeet, 0),
		PerimeterLF: numberOr(ed.PerimeterLF, 0),
		WallSF:      numberOr(ed.WallSF, 0),
		CeilingSF:   numberOr(ed.CeilingSF, 0),
		HeightIn:    feetToInches(numberOr(ed.HeightFT, 0)),
	}
}

func decodeLineItem(ei *esxLineItem, roomName, levelName string, roomIndex int) domain.ParsedLineItem {
	return domain.ParsedLineItem{
		Selector:    ei.Selector,
		Description: ei.Description,
		Quantity:    numberOr(ei.Quantity, 0),
		Unit:        ei.Unit,
		UnitPrice:   numberOr(ei.UnitPrice, 0),
		Total:       numberOr(ei.Total, 0),
		Category:    ei.Category,
		RoomName:    roomName,
		LevelName:   levelName,
		RoomIndex:   roomIndex,
	}
}

func decodePhotos(photos []esxPhoto) []domain.ParsedPhoto {
	if len(photos) == 0 {
		return nil
	}
	out := make([]domain.ParsedPhoto, len(photos))
	for i := range photos {
		ep := &photos[i]
		out[i] = domain.ParsedPhoto{
			Filename: textOr(ep.Filename, ""),
			RoomName: textOr(ep.Room, ""),
			Type:     textOr(ep.Type, ""),
			Caption:  ep.Caption,
			TakenAt:  timeOr(ep.TakenAt),
			URL:      textOr(ep.URL, ""),
		}
	}
	return out
}

// resolvePhotos is the second decode pass: photo room names are matched
// against decoded room names. The first match wins, and a user room wins
// over the synthesized General room of the same name.
func resolvePhotos(result *domain.ParseResult) {
	roomByName := make(map[string]int, len(result.Rooms))
	for _, synthetic := range []bool{true, false} {
		for i := len(result.Rooms) - 1; i >= 0; i-- {
			if result.Rooms[i].Synthetic == synthetic {
				roomByName[result.Rooms[i].Name] = i
			}
		}
	}

	for i := range result.Photos {
		photo := &result.Photos[i]
		photo.RoomIndex = -1
		if idx, ok := roomByName[photo.RoomName]; ok {
			photo.RoomIndex = idx
		}
	}
}

func buildProject(doc *esxDocument, items []domain.ParsedLineItem) *domain.Project {
	p := &domain.Project{
		Name:         textOr(doc.Project.Name, UntitledProject),
		ClaimNumber:  textOr(doc.Project.ClaimNumber, ""),
		PolicyNumber: textOr(doc.Project.PolicyNumber, ""),
		DateOfLoss:   timeOr(doc.Project.DateOfLoss),
		Insured:      decodeContact(doc.Insured.esxContact),
		Adjuster:     decodeContact(doc.Adjuster),
		Address: domain.Address{
			Street: textOr(doc.Insured.Address.Street, ""),
			City:   textOr(doc.Insured.Address.City, ""),
			State:  textOr(doc.Insured.Address.State, ""),
			Zip:    textOr(doc.Insured.Address.Zip, ""),
		},
	}
	if t := timeOr(doc.Project.DateCreated); t != nil {
		p.CreatedAt = *t
	}
	if t := timeOr(doc.Project.DateModified); t != nil {
		p.ModifiedAt = *t
	}

	totals := make([]float64, len(items))
	for i := range items {
		totals[i] = items[i].Total
	}
	computed := money.Sum(totals)
	if doc.Estimate.TotalAmount != nil {
		p.Total = numberOr(*doc.Estimate.TotalAmount, computed)
	} else {
		p.Total = computed
	}
	return p
}

func decodeContact(c esxContact) domain.Contact {
	return domain.Contact{
		Name:  textOr(c.Name, ""),
		Phone: textOr(c.Phone, ""),
		Email: textOr(c.Email, ""),
	}
}
