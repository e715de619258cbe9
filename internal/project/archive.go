// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
)

const projectMember = "project.json"

var zipMagic = []byte("PK\x03\x04")

// IsArchive reports whether doc looks like an .sb3 (zip) payload.
func IsArchive(doc []byte) bool {
	return bytes.HasPrefix(doc, zipMagic)
}

// Document returns the project.json payload of doc, extracting it first when
// doc is an .sb3 archive.
func Document(doc []byte) ([]byte, error) {
	if !IsArchive(doc) {
		return doc, nil
	}
	project, _, err := extractArchive(doc)
	return project, err
}

// extractArchive returns the project.json member of an .sb3 archive plus every
// other member keyed by its base name.
func extractArchive(doc []byte) ([]byte, map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, nil, Errorf(KindLoad, "archive", "failed to open archive: %w", err)
	}

	var project []byte
	files := map[string][]byte{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			return nil, nil, Errorf(KindLoad, "archive", "failed to read %s: %w", f.Name, err)
		}
		name := path.Base(f.Name)
		if name == projectMember {
			project = data
			continue
		}
		files[name] = data
	}

	if project == nil {
		return nil, nil, Errorf(KindLoad, "archive", "archive has no %s", projectMember)
	}

	return project, files, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
