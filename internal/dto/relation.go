package dto

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Relation принимает все исторические формы relation-полей старого CMS API:
// голое число, числовую строку, объект {"id": ...}, обертку {"connect": ...} /
// {"set": ...} (значение или массив), массив из любого перечисленного, рекурсивно.
// Декодируется один раз на границе API. Неразборчивые листья молча
// отбрасываются: валидатор сам решает, что делать с пустым набором.
//
// Поле типа *Relation, оставшееся nil после Bind, означает, что клиент
// поле не трогал.
type Relation struct {
	ids []uint64
}

func NewRelation(ids ...uint64) *Relation {
	r := &Relation{}
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			r.ids = append(r.ids, id)
		}
	}
	return r
}

func (r *Relation) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ids = nil
	seen := make(map[uint64]bool)
	collectIDs(raw, &r.ids, seen)
	return nil
}

func (r *Relation) MarshalJSON() ([]byte, error) {
	if r == nil || r.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ids)
}

// IDs возвращает нормализованный набор: порядок появления сохранен, дубликаты убраны.
func (r *Relation) IDs() []uint64 {
	if r == nil {
		return nil
	}
	return r.ids
}

func (r *Relation) First() (uint64, bool) {
	if r == nil || len(r.ids) == 0 {
		return 0, false
	}
	return r.ids[0], true
}

func (r *Relation) IsEmpty() bool {
	return r == nil || len(r.ids) == 0
}

func collectIDs(v interface{}, out *[]uint64, seen map[uint64]bool) {
	switch val := v.(type) {
	case float64:
		if val > 0 && val == math.Trunc(val) {
			pushID(uint64(val), out, seen)
		}
	case string:
		if id, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64); err == nil && id > 0 {
			pushID(id, out, seen)
		}
	case []interface{}:
		for _, item := range val {
			collectIDs(item, out, seen)
		}
	case map[string]interface{}:
		if id, ok := val["id"]; ok {
			collectIDs(id, out, seen)
			return
		}
		connect, hasConnect := val["connect"]
		set, hasSet := val["set"]
		if hasConnect {
			collectIDs(connect, out, seen)
		}
		if hasSet {
			collectIDs(set, out, seen)
		}
		if hasConnect || hasSet {
			return
		}
		// Произвольный объект: обходим значения в стабильном порядке ключей.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectIDs(val[k], out, seen)
		}
	}
}

func pushID(id uint64, out *[]uint64, seen map[uint64]bool) {
	if !seen[id] {
		seen[id] = true
		*out = append(*out, id)
	}
}

// DepartmentRef — ссылка на департамент в одном из трех видов: числовой id,
// ключ (IT, DIGITALIZATION, ...) или документ-идентификатор старой CMS.
// Разбор в канонический ключ выполняет DepartmentResolver.
type DepartmentRef struct {
	raw interface{}
}

func NewDepartmentRef(raw interface{}) *DepartmentRef {
	return &DepartmentRef{raw: raw}
}

func (d *DepartmentRef) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// Обертки {id} / {connect} / {set} разворачиваем до листа.
	if m, ok := raw.(map[string]interface{}); ok {
		for _, key := range []string{"id", "connect", "set", "key", "documentId"} {
			if v, ok := m[key]; ok {
				raw = unwrapSingle(v)
				break
			}
		}
	}
	d.raw = raw
	return nil
}

func (d *DepartmentRef) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.raw)
}

// Value возвращает лист ссылки: float64, string либо nil.
func (d *DepartmentRef) Value() interface{} {
	if d == nil {
		return nil
	}
	return d.raw
}

func unwrapSingle(v interface{}) interface{} {
	switch val := v.(type) {
	case []interface{}:
		if len(val) == 0 {
			return nil
		}
		return unwrapSingle(val[0])
	case map[string]interface{}:
		if id, ok := val["id"]; ok {
			return unwrapSingle(id)
		}
		return nil
	default:
		return val
	}
}
