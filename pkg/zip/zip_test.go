package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	data, err := ArchiveAssets([]Asset{
		{Filename: "creations.json", MIME: "application/json", Data: []byte(`[]`)},
		{Filename: "images/a.svg", MIME: "image/svg+xml", Data: []byte("<svg/>")},
	})
	if err != nil {
		t.Fatalf("ArchiveAssets returned error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 || zr.File[1].Name != "images/a.svg" {
		t.Fatalf("entries = %v", zr.File)
	}
	rc, err := zr.File[1].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "<svg/>" {
		t.Fatalf("entry body = %q", body)
	}
}

func TestArchiveAssetsRejectsDuplicates(t *testing.T) {
	_, err := ArchiveAssets([]Asset{{Filename: "a"}, {Filename: "a"}})
	if err == nil {
		t.Fatal("expected duplicate entry error")
	}
	if _, err := ArchiveAssets([]Asset{{Filename: ""}}); err == nil {
		t.Fatal("expected empty filename error")
	}
}
