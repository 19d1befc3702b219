package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

const (
	relTypeWorksheet = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relTypeDrawing   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing"
)

// xlsxPackage gives access to the parts of an xlsx zip container.
type xlsxPackage struct {
	parts map[string]*zip.File
}

func newPackage(r *zip.Reader) *xlsxPackage {
	p := &xlsxPackage{parts: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		p.parts[strings.TrimPrefix(f.Name, "/")] = f
	}
	return p
}

// read returns a part's bytes; ok is false when the part does not exist.
func (p *xlsxPackage) read(name string) (data []byte, ok bool, err error) {
	f, found := p.parts[name]
	if !found {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, true, err
	}
	defer rc.Close()
	data, err = io.ReadAll(rc)
	return data, true, err
}

// decode unmarshals a part into v; ok is false when the part does not exist.
func (p *xlsxPackage) decode(name string, v interface{}) (ok bool, err error) {
	data, ok, err := p.read(name)
	if !ok || err != nil {
		return ok, err
	}
	return true, xml.Unmarshal(data, v)
}

type opcRelationships struct {
	Items []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

// relationships returns the internal relationships of a part keyed by id,
// with targets resolved to part names.
func (p *xlsxPackage) relationships(part string) (map[string]opcTarget, error) {
	var rels opcRelationships
	if _, err := p.decode(relsPartName(part), &rels); err != nil {
		return nil, err
	}
	out := make(map[string]opcTarget, len(rels.Items))
	for _, r := range rels.Items {
		if strings.EqualFold(r.TargetMode, "External") {
			continue
		}
		out[r.ID] = opcTarget{Type: r.Type, Part: resolvePartName(part, r.Target)}
	}
	return out, nil
}

type opcTarget struct {
	Type string
	Part string
}

type workbookPart struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

// sheetDrawings maps each worksheet name to its drawing part. Sheets without
// a drawing are left out.
func (p *xlsxPackage) sheetDrawings() (map[string]string, error) {
	var wb workbookPart
	if ok, err := p.decode("xl/workbook.xml", &wb); !ok || err != nil {
		return map[string]string{}, err
	}
	wbRels, err := p.relationships("xl/workbook.xml")
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for _, s := range wb.Sheets {
		sheet, ok := wbRels[s.RID]
		if !ok || sheet.Type != relTypeWorksheet {
			continue
		}
		sheetRels, err := p.relationships(sheet.Part)
		if err != nil {
			return nil, err
		}
		for _, rel := range sheetRels {
			if rel.Type == relTypeDrawing {
				out[s.Name] = rel.Part
				break
			}
		}
	}
	return out, nil
}

// relsPartName returns the relationships part of a part, e.g.
// xl/_rels/workbook.xml.rels for xl/workbook.xml.
func relsPartName(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// resolvePartName resolves a relationship target against its source part.
// Targets starting with "/" are package-absolute.
func resolvePartName(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}
