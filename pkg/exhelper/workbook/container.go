package workbook

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/richardlehane/mscfb"
)

// oleSignature starts every compound file binary (OLE2) container.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

type containerKind int

const (
	containerZip containerKind = iota
	containerEncrypted
	containerLegacy
	containerUnknownCFB
)

// sniffContainer classifies a workbook file before excelize reads it. Office
// Open XML files are zip archives; password protected ones and legacy .xls
// files are both CFB containers and are told apart by their streams.
func sniffContainer(path string) (containerKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return containerZip, err
	}
	defer f.Close()

	head := make([]byte, len(oleSignature))
	if _, err := io.ReadFull(f, head); err != nil {
		// Too short to be a CFB; excelize reports the real problem.
		return containerZip, nil
	}
	if !bytes.Equal(head, oleSignature) {
		return containerZip, nil
	}

	doc, err := mscfb.New(f)
	if err != nil {
		return containerUnknownCFB, nil
	}
	kind := containerUnknownCFB
	for {
		entry, err := doc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return containerUnknownCFB, nil
		}
		switch entry.Name {
		case "EncryptionInfo", "EncryptedPackage":
			return containerEncrypted, nil
		case "Workbook", "Book":
			kind = containerLegacy
		}
	}
	return kind, nil
}
