package parser

import (
	"archive/zip"
	"encoding/xml"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
)

// presetLabels maps preset geometry names to the shape type names shown by
// the spreadsheet application.
var presetLabels = map[string]string{
	"rect":                       "AutoShape-Rectangle",
	"roundRect":                  "AutoShape-RoundedRectangle",
	"ellipse":                    "AutoShape-Oval",
	"diamond":                    "AutoShape-Diamond",
	"triangle":                   "AutoShape-IsoscelesTriangle",
	"flowChartProcess":           "AutoShape-FlowchartProcess",
	"flowChartDecision":          "AutoShape-FlowchartDecision",
	"flowChartTerminator":        "AutoShape-FlowchartTerminator",
	"flowChartData":              "AutoShape-FlowchartData",
	"flowChartDocument":          "AutoShape-FlowchartDocument",
	"flowChartMultidocument":     "AutoShape-FlowchartMultidocument",
	"flowChartPredefinedProcess": "AutoShape-FlowchartPredefinedProcess",
	"flowChartInternalStorage":   "AutoShape-FlowchartInternalStorage",
	"flowChartPreparation":       "AutoShape-FlowchartPreparation",
	"flowChartManualInput":       "AutoShape-FlowchartManualInput",
	"flowChartManualOperation":   "AutoShape-FlowchartManualOperation",
	"flowChartConnector":         "AutoShape-FlowchartConnector",
	"flowChartOffpageConnector":  "AutoShape-FlowchartOffpageConnector",
	"line":                       "Line",
	"straightConnector1":         "Line",
}

const textBoxLabel = "TextBox"

// arrowStyles maps line end types to the application's arrowhead style numbers.
var arrowStyles = map[string]int{
	"none":     1,
	"triangle": 2,
	"arrow":    2,
	"stealth":  3,
	"diamond":  4,
	"oval":     5,
}

// compass lists connector directions by 45 degree sector, counter-clockwise
// from east.
var compass = [...]string{"E", "NE", "N", "NW", "W", "SW", "S", "SE"}

// drawingNode is any element of a drawing part: an anchor, a group or a
// shape. Children not matched by a named field land in Children, which is
// how groups and anchors expose the shapes they hold.
type drawingNode struct {
	XMLName   xml.Name
	NvSpPr    *nonVisualProps `xml:"nvSpPr"`
	NvCxnSpPr *nonVisualProps `xml:"nvCxnSpPr"`
	SpPr      *shapeProps     `xml:"spPr"`
	TxBody    *textBody       `xml:"txBody"`
	Children  []drawingNode   `xml:",any"`
}

type nonVisualProps struct {
	CNvPr struct {
		ID   string `xml:"id,attr"`
		Name string `xml:"name,attr"`
	} `xml:"cNvPr"`
	CNvSpPr *struct {
		TxBox string `xml:"txBox,attr"`
	} `xml:"cNvSpPr"`
	CNvCxnSpPr *struct {
		Start *connection `xml:"stCxn"`
		End   *connection `xml:"endCxn"`
	} `xml:"cNvCxnSpPr"`
}

type connection struct {
	ID string `xml:"id,attr"`
}

type shapeProps struct {
	Xfrm *struct {
		Rot int64 `xml:"rot,attr"`
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"off"`
		Ext struct {
			Cx int64 `xml:"cx,attr"`
			Cy int64 `xml:"cy,attr"`
		} `xml:"ext"`
	} `xml:"xfrm"`
	PrstGeom *struct {
		Prst string `xml:"prst,attr"`
	} `xml:"prstGeom"`
	Ln *struct {
		HeadEnd *lineEnd `xml:"headEnd"`
		TailEnd *lineEnd `xml:"tailEnd"`
	} `xml:"ln"`
}

type lineEnd struct {
	Type string `xml:"type,attr"`
}

type textBody struct {
	Paragraphs []struct {
		Runs []struct {
			XMLName xml.Name
			T       string `xml:"t"`
		} `xml:",any"`
	} `xml:"p"`
}

func (b *textBody) text() string {
	if b == nil {
		return ""
	}
	lines := make([]string, 0, len(b.Paragraphs))
	for _, p := range b.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			switch r.XMLName.Local {
			case "r", "fld":
				sb.WriteString(r.T)
			case "br":
				sb.WriteByte('\n')
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// parsedShape is a shape plus the raw ids needed to link connectors.
type parsedShape struct {
	shape       models.Shape
	drawingID   string
	isConnector bool
	startID     string
	endID       string
}

// ExtractShapes reads the drawing shapes of every sheet of an xlsx file.
// Sheets without a drawing part are absent from the result; a drawing that
// cannot be decoded yields an empty list.
func ExtractShapes(xlsxPath string) (map[string][]models.Shape, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pkg := newPackage(&r.Reader)
	drawings, err := pkg.sheetDrawings()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Shape, len(drawings))
	for sheet, part := range drawings {
		shapes, err := readDrawing(pkg, part)
		if err != nil {
			logrus.WithFields(logrus.Fields{"sheet": sheet, "drawing": part}).
				WithError(err).Warn("Skipping unreadable drawing part")
			shapes = []models.Shape{}
		}
		result[sheet] = shapes
	}
	return result, nil
}

func readDrawing(pkg *xlsxPackage, part string) ([]models.Shape, error) {
	data, ok, err := pkg.read(part)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Shape{}, nil
	}
	parsed, err := parseDrawing(data)
	if err != nil {
		return nil, err
	}
	linkConnectors(parsed)

	shapes := make([]models.Shape, len(parsed))
	for i, p := range parsed {
		shapes[i] = p.shape
	}
	return shapes, nil
}

// parseDrawing decodes a drawing part and returns its shapes in document
// order, with group members flattened.
func parseDrawing(data []byte) ([]parsedShape, error) {
	var root drawingNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	var out []parsedShape
	var walk func(n *drawingNode)
	walk = func(n *drawingNode) {
		for i := range n.Children {
			child := &n.Children[i]
			switch child.XMLName.Local {
			case "sp":
				out = append(out, newParsedShape(child, child.NvSpPr, false))
			case "cxnSp":
				out = append(out, newParsedShape(child, child.NvCxnSpPr, true))
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor", "grpSp", "AlternateContent", "Choice":
				walk(child)
			}
		}
	}
	walk(&root)
	return out, nil
}

func newParsedShape(n *drawingNode, nv *nonVisualProps, isCxnSp bool) parsedShape {
	var p parsedShape
	var prst string
	textBox := false
	if nv != nil {
		p.drawingID = nv.CNvPr.ID
		p.shape.Name = nv.CNvPr.Name
		if nv.CNvSpPr != nil {
			textBox = nv.CNvSpPr.TxBox == "1" || nv.CNvSpPr.TxBox == "true"
		}
		if c := nv.CNvCxnSpPr; c != nil {
			if c.Start != nil {
				p.startID = c.Start.ID
			}
			if c.End != nil {
				p.endID = c.End.ID
			}
		}
	}

	var begin, end *int
	if sp := n.SpPr; sp != nil {
		if x := sp.Xfrm; x != nil {
			p.shape.L, p.shape.T = EMUToPixels(x.Off.X), EMUToPixels(x.Off.Y)
			p.shape.W, p.shape.H = EMUToPixels(x.Ext.Cx), EMUToPixels(x.Ext.Cy)
			// Rotation is stored in 60000ths of a degree.
			if deg := float64(x.Rot) / 60000; math.Abs(deg) >= 1e-6 {
				p.shape.Rotation = &deg
			}
		}
		if sp.PrstGeom != nil {
			prst = sp.PrstGeom.Prst
		}
		if ln := sp.Ln; ln != nil {
			begin, end = arrowStyle(ln.HeadEnd), arrowStyle(ln.TailEnd)
		}
	}
	p.shape.Text = n.TxBody.text()
	p.shape.Type = typeLabel(prst, p.shape.Name, textBox)

	p.isConnector = isCxnSp || isConnectorShape(prst, p.shape.Type)
	if p.isConnector {
		p.shape.Direction = computeDirection(p.shape.W, p.shape.H)
		p.shape.BeginArrowStyle, p.shape.EndArrowStyle = begin, end
	}
	return p
}

func typeLabel(prst, name string, textBox bool) string {
	switch {
	case textBox:
		return textBoxLabel
	case prst != "":
		if label, ok := presetLabels[prst]; ok {
			return label
		}
		if strings.Contains(prst, "Connector") {
			return "AutoShape-Connector"
		}
		return "AutoShape-" + prst
	case name != "":
		return name
	}
	return "Unknown"
}

func arrowStyle(e *lineEnd) *int {
	if e == nil {
		return nil
	}
	style, ok := arrowStyles[e.Type]
	if !ok {
		return nil
	}
	return &style
}

// computeDirection returns the compass heading of a connector whose bounding
// box spans width x height pixels, y growing downwards. A zero box has no
// direction.
func computeDirection(width, height int) string {
	if width == 0 && height == 0 {
		return ""
	}
	angle := math.Atan2(float64(-height), float64(width)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return compass[int(math.Floor((angle+22.5)/45))%len(compass)]
}

func isConnectorShape(prst, label string) bool {
	p := strings.ToLower(prst)
	return strings.Contains(p, "connector") || strings.Contains(p, "line") ||
		strings.Contains(label, "Line") || strings.Contains(label, "Connector")
}

// linkConnectors numbers the non-connector shapes from 1 and points each
// connector's BeginID and EndID at the shapes it attaches to.
func linkConnectors(shapes []parsedShape) {
	ids := make(map[string]int)
	next := 0
	for i := range shapes {
		s := &shapes[i]
		if s.isConnector || s.drawingID == "" {
			continue
		}
		next++
		id := next
		s.shape.ID = &id
		ids[s.drawingID] = id
	}
	for i := range shapes {
		s := &shapes[i]
		if !s.isConnector {
			continue
		}
		if id, ok := ids[s.startID]; ok && s.startID != "" {
			s.shape.BeginID = &id
		}
		if id, ok := ids[s.endID]; ok && s.endID != "" {
			s.shape.EndID = &id
		}
	}
}
