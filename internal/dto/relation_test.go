package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRelation(t *testing.T, payload string) *Relation {
	t.Helper()
	var r Relation
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	return &r
}

func TestRelationUnmarshal(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected []uint64
	}{
		{"голое число", `7`, []uint64{7}},
		{"числовая строка", `"42"`, []uint64{42}},
		{"строка с пробелами", `" 42 "`, []uint64{42}},
		{"объект с id", `{"id": 5}`, []uint64{5}},
		{"обертка connect", `{"connect": [{"id": 1}, {"id": 2}]}`, []uint64{1, 2}},
		{"обертка set", `{"set": [3, "4"]}`, []uint64{3, 4}},
		{"connect со скалярным значением", `{"connect": 9}`, []uint64{9}},
		{"массив смешанных форм", `[1, "2", {"id": 3}, {"connect": [4]}]`, []uint64{1, 2, 3, 4}},
		{"дубликаты убираются с сохранением порядка", `[5, "5", {"id": 2}, 5, 2]`, []uint64{5, 2}},
		{"id имеет приоритет над остальными ключами", `{"id": 1, "connect": [2]}`, []uint64{1}},
		{"ноль отбрасывается", `0`, nil},
		{"отрицательное отбрасывается", `-3`, nil},
		{"дробное отбрасывается", `1.5`, nil},
		{"нечисловая строка отбрасывается", `"abc"`, nil},
		{"null дает пустой набор", `null`, nil},
		{"пустой массив", `[]`, nil},
		{"мусор в массиве отбрасывается молча", `[1, "abc", null, 2]`, []uint64{1, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := decodeRelation(t, tc.payload)
			assert.Equal(t, tc.expected, r.IDs())
		})
	}
}

func TestRelationGenericObjectTraversal(t *testing.T) {
	// Произвольный объект обходится по значениям в стабильном порядке ключей.
	r := decodeRelation(t, `{"owner": {"id": 1}, "supportingSpecialists": [{"id": 2}, {"id": 3}]}`)
	assert.Equal(t, []uint64{1, 2, 3}, r.IDs())
}

func TestRelationNilSafety(t *testing.T) {
	var r *Relation
	assert.Nil(t, r.IDs())
	assert.True(t, r.IsEmpty())

	id, ok := r.First()
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestRelationFirst(t *testing.T) {
	r := decodeRelation(t, `{"connect": [7, 8]}`)
	id, ok := r.First()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

func TestNewRelation(t *testing.T) {
	r := NewRelation(3, 1, 3, 2)
	assert.Equal(t, []uint64{3, 1, 2}, r.IDs())
	assert.False(t, r.IsEmpty())
}

func TestDepartmentRefUnmarshal(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected interface{}
	}{
		{"числовой id", `4`, float64(4)},
		{"строковый ключ", `"IT"`, "IT"},
		{"объект с id", `{"id": 2}`, float64(2)},
		{"обертка connect", `{"connect": [{"id": 6}]}`, float64(6)},
		{"обертка set", `{"set": 3}`, float64(3)},
		{"documentId", `{"documentId": "abc-123"}`, "abc-123"},
		{"null", `null`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ref DepartmentRef
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &ref))
			assert.Equal(t, tc.expected, ref.Value())
		})
	}
}

func TestDepartmentRefNilSafety(t *testing.T) {
	var ref *DepartmentRef
	assert.Nil(t, ref.Value())
}
