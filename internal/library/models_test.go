// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookUnmarshal_LegacyDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DateList
	}{
		{"scalar", `{"title":"A","start_date":"01.01.2020"}`, DateList{"01.01.2020"}},
		{"null", `{"title":"A","start_date":null}`, DateList{}},
		{"missing", `{"title":"A"}`, DateList{}},
		{"empty string", `{"title":"A","start_date":""}`, DateList{}},
		{"list", `{"title":"A","start_date":["01.01.2020","02.02.2021"]}`, DateList{"01.01.2020", "02.02.2021"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &b))
			assert.Equal(t, tt.want, b.StartDate)
			assert.NotNil(t, b.DateFinished)
		})
	}
}

func TestBookUnmarshal_Defaults(t *testing.T) {
	var b Book
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dune","status":"Finished","tags":["", "scifi"]}`), &b))

	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "", b.Author)
	assert.Equal(t, "", b.Notes)
	assert.Equal(t, StatusUnread, b.Status, "unknown status falls back to Unread")
	assert.Equal(t, []string{"scifi"}, b.Tags)
	assert.NotEmpty(t, b.ID)
}

func TestBookUnmarshal_RejectsObjectTitle(t *testing.T) {
	var b Book
	err := json.Unmarshal([]byte(`{"title":{"en":"Dune"}}`), &b)
	assert.Error(t, err)
}

func TestBookMarshal_FieldOrderAndPassThrough(t *testing.T) {
	var b Book
	raw := `{"zeta":1,"title":"Dune","isbn":"978-0441013593","status":"Read"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	require.Contains(t, b.Extra, "isbn")

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"Dune","author":"","tags":[],"status":"Read","start_date":[],"date_finished":[],"notes":"","isbn":"978-0441013593","zeta":1}`,
		string(data))
}

func TestBookMarshal_NoHTMLEscaping(t *testing.T) {
	b := &Book{Title: "Q&A <notes>", Status: StatusUnread}
	data, err := encodeBooks([]*Book{b})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Q&A <notes>"`)
}

func TestBookClone_IsDeep(t *testing.T) {
	b := &Book{
		Title:     "Dune",
		Tags:      []string{"scifi"},
		StartDate: DateList{"01.01.2020"},
		Extra:     map[string]json.RawMessage{"isbn": json.RawMessage(`"x"`)},
	}
	c := b.Clone()
	c.Tags[0] = "changed"
	c.StartDate[0] = "02.02.2020"
	c.Extra["isbn"][1] = 'y'

	assert.Equal(t, "scifi", b.Tags[0])
	assert.Equal(t, "01.01.2020", b.StartDate[0])
	assert.Equal(t, `"x"`, string(b.Extra["isbn"]))
	assert.NotNil(t, c.DateFinished)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" reading ")
	assert.True(t, ok)
	assert.Equal(t, StatusReading, s)

	_, ok = ParseStatus("done")
	assert.False(t, ok)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"scifi", "classic", "scifi"}, splitTags(" scifi, classic ,, scifi ,"))
	assert.Equal(t, []string{}, splitTags(""))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("31.02.2024")
	assert.Error(t, err, "February 31st does not exist")

	_, err = ParseDate("2024-02-01")
	assert.Error(t, err)

	d, err := canonicalDate("1.2.2024")
	require.NoError(t, err)
	assert.Equal(t, "01.02.2024", d)
}
