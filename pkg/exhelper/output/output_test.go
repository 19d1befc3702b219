package output

import (
	"bytes"
	"testing"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
)

func TestToJSON(t *testing.T) {
	match := models.CellMatch{CellRef: models.CellRef{R: 2, C: 2}, Cell: "B2", Value: "total"}

	compact, err := ToJSON(match, false)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if bytes.Contains(compact, []byte("\n")) {
		t.Errorf("compact output contains newline: %s", compact)
	}

	pretty, err := ToJSON(match, true)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if !bytes.Contains(pretty, []byte("\n  \"cell\": \"B2\"")) {
		t.Errorf("pretty output not indented: %s", pretty)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []int{1, 2}, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.String(); got != "[1,2]\n" {
		t.Errorf("Write() = %q, expected %q", got, "[1,2]\n")
	}
}
