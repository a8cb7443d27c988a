// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "basic.json"))
	require.NoError(t, err)

	assert.False(t, doc.Empty())
	require.Len(t, doc.Entries, 3)

	// File order is application order.
	assert.Equal(t, `Software\Vendor\App`, doc.Entries[0].Path)
	assert.Equal(t, "Mode", doc.Entries[0].Name)
	assert.Equal(t, "DWord", doc.Entries[0].Type)
	assert.Equal(t, "run mode", doc.Entries[0].Description)

	assert.Equal(t, "Greeting", doc.Entries[1].Name)
	assert.Equal(t, "", doc.Entries[1].Type, "type tag is optional")

	assert.Equal(t, "Filters", doc.Entries[2].Name)
	assert.Equal(t, "MultiString", doc.Entries[2].Type)
}

func TestLoadYAML(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	require.Len(t, doc.Entries, 2)
	assert.Equal(t, `Software\Vendor\App`, doc.Entries[0].Path)
	assert.Equal(t, "Mode", doc.Entries[0].Name)
	assert.Equal(t, "DWord", doc.Entries[0].Type)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "malformed.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	// The underlying parser message is preserved for the report.
	assert.NotEqual(t, ErrParse.Error(), err.Error())
}

func TestParseEmptyVariants(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty settings array", data: `{"settings": []}`},
		{name: "missing settings key", data: `{"other": 1}`},
		{name: "empty object", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse("doc.json", []byte(tt.data))
			require.NoError(t, err)
			assert.True(t, doc.Empty())
		})
	}
}

func TestParseBadTagStillParses(t *testing.T) {
	// An unrecognized type tag is a per-entry failure at apply time, never a
	// document parse failure.
	doc, err := Parse("doc.json", []byte(`{"settings":[{"path":"X","name":"N","type":"Float","value":1}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "Float", doc.Entries[0].Type)
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{name: "valid", entry: Entry{Path: "X", Name: "N"}, wantErr: false},
		{name: "empty path", entry: Entry{Name: "N"}, wantErr: true},
		{name: "blank path", entry: Entry{Path: "  ", Name: "N"}, wantErr: true},
		{name: "empty name", entry: Entry{Path: "X"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJSONAndYAMLEquivalent(t *testing.T) {
	jsonDoc, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("testdata", "basic.json"))
	require.NoError(t, err)
	fromJSON, err := Parse("basic.json", data)
	require.NoError(t, err)

	// The YAML fixture mirrors the first two JSON entries.
	assert.Equal(t, fromJSON.Entries[0].Path, jsonDoc.Entries[0].Path)
	assert.Equal(t, fromJSON.Entries[0].Name, jsonDoc.Entries[0].Name)
	assert.Equal(t, fromJSON.Entries[0].Type, jsonDoc.Entries[0].Type)
}
