package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGender_Synonyms(t *testing.T) {
	for raw, want := range genderSynonyms {
		got, ok := NormalizeGender(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		in     string
		want   Gender
		wantOK bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"Men", GenderMale, true},
		{"  WOMEN ", GenderFemale, true},
		{"Mén", GenderMale, true},
		{"Wömen", GenderFemale, true},
		{"Men's", GenderMale, true},
		{"Girls", GenderKids, true},
		{"Kids", GenderKids, true},
		{"BABY", GenderBaby, true},
		{"Unisex", GenderUnisex, true},
		{"homme", GenderNone, true},
		{"hömme", GenderNone, true},
		{"adult", GenderNone, true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizeGender(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeGender_Idempotent(t *testing.T) {
	for _, g := range Genders() {
		got, ok := NormalizeGender(string(g))
		assert.True(t, ok)
		assert.Equal(t, g, got, "bucket %q", g)
	}
	for raw := range genderSynonyms {
		once, _ := NormalizeGender(raw)
		twice, _ := NormalizeGender(string(once))
		assert.Equal(t, once, twice, raw)
	}
}

func TestGenderID(t *testing.T) {
	assert.Nil(t, genderID("", GenderIDs))
	if id := genderID("Men", GenderIDs); assert.NotNil(t, id) {
		assert.EqualValues(t, 3, *id)
	}
	if id := genderID("robots", GenderIDs); assert.NotNil(t, id) {
		assert.Equal(t, GenderIDs[GenderNone], *id)
	}
}

func TestGenderIDs_CoverEveryBucket(t *testing.T) {
	seen := map[uint]bool{}
	for _, g := range Genders() {
		id, ok := GenderIDs[g]
		assert.True(t, ok, g)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}
