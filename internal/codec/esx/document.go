package esx

import "encoding/xml"

// The types below mirror the ESX element hierarchy for decoding. Every
// leaf is read as a string so a malformed number degrades to its default
// instead of failing the whole document. Unknown elements are ignored.

type esxDocument struct {
	XMLName  xml.Name    `xml:"ESX"`
	Version  string      `xml:"version,attr"`
	Project  esxProject  `xml:"ProjectInfo"`
	Insured  esxInsured  `xml:"InsuredInfo"`
	Adjuster esxContact  `xml:"AdjusterInfo"`
	Estimate esxEstimate `xml:"Estimate"`
	Photos   []esxPhoto  `xml:"Photos>Photo"`
}

type esxProject struct {
	Name         string `xml:"Name"`
	ClaimNumber  string `xml:"ClaimNumber"`
	PolicyNumber string `xml:"PolicyNumber"`
	DateOfLoss   string `xml:"DateOfLoss"`
	DateCreated  string `xml:"DateCreated"`
	DateModified string `xml:"DateModified"`
}

type esxContact struct {
	Name  string `xml:"Name"`
	Phone string `xml:"Phone"`
	Email string `xml:"Email"`
}

type esxInsured struct {
	esxContact
	Address esxAddress `xml:"Address"`
}

type esxAddress struct {
	Street string `xml:"Street"`
	City   string `xml:"City"`
	State  string `xml:"State"`
	Zip    string `xml:"Zip"`
}

type esxEstimate struct {
	TotalAmount *string    `xml:"TotalAmount"`
	Levels      []esxLevel `xml:"Levels>Level"`
}

type esxLevel struct {
	Name      string
	Label     string
	Synthetic string
	Rooms     []esxRoom
}

// UnmarshalXML collects rooms in document order, whether they sit
// directly under the level or inside a Rooms container.
func (l *esxLevel) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case attrName:
			l.Name = a.Value
		case attrLabel:
			l.Label = a.Value
		case attrSynthetic:
			l.Synthetic = a.Value
		}
	}

	var room func(el xml.StartElement) error
	room = func(el xml.StartElement) error {
		switch el.Name.Local {
		case "Room":
			var r esxRoom
			if err := d.DecodeElement(&r, &el); err != nil {
				return err
			}
			l.Rooms = append(l.Rooms, r)
			return nil
		case "Rooms":
			return eachChild(d, room)
		default:
			return d.Skip()
		}
	}
	return eachChild(d, room)
}

type esxRoom struct {
	Name       string
	Category   string
	Synthetic  string
	Dimensions esxDimensions
	LineItems  []esxLineItem
}

// UnmarshalXML collects line items in document order, whether they sit
// inside a LineItems container or directly under the room.
func (r *esxRoom) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case attrName:
			r.Name = a.Value
		case attrCategory:
			r.Category = a.Value
		case attrSynthetic:
			r.Synthetic = a.Value
		}
	}

	var child func(el xml.StartElement) error
	child = func(el xml.StartElement) error {
		switch el.Name.Local {
		case "Dimensions":
			return d.DecodeElement(&r.Dimensions, &el)
		case "LineItem":
			var item esxLineItem
			if err := d.DecodeElement(&item, &el); err != nil {
				return err
			}
			r.LineItems = append(r.LineItems, item)
			return nil
		case "LineItems":
			return eachChild(d, child)
		default:
			return d.Skip()
		}
	}
	return eachChild(d, child)
}

// eachChild calls fn for every child element until the enclosing end
// element. fn must consume the child it is given.
func eachChild(d *xml.Decoder, fn func(xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

type esxDimensions struct {
	SquareFeet  string `xml:"SquareFeet"`
	PerimeterLF string `xml:"PerimeterLF"`
	WallSF      string `xml:"WallSF"`
	CeilingSF   string `xml:"CeilingSF"`
	HeightFT    string `xml:"HeightFT"`
}

type esxLineItem struct {
	Selector    string `xml:"Selector"`
	Description string `xml:"Description"`
	Quantity    string `xml:"Quantity"`
	Unit        string `xml:"Unit"`
	UnitPrice   string `xml:"UnitPrice"`
	Total       string `xml:"Total"`
	Category    string `xml:"Category"`
}

type esxPhoto struct {
	Filename string `xml:"Filename"`
	Room     string `xml:"Room"`
	Type     string `xml:"Type"`
	Caption  string `xml:"Caption"`
	TakenAt  string `xml:"TakenAt"`
	URL      string `xml:"URL"`
}
