package helper

import (
	"strings"
	"unicode"
)

/*
   Batas serialisasi tunggal antara nama field aplikasi (camelCase, JSON)
   dan nama kolom storage (snake_case). Model gorm memakai tag `column:`
   eksplisit; helper di bawah dipakai untuk key dinamis (sort/filter,
   payload JSON bebas, row lama dengan ejaan campuran).
*/

// ToSnake: "classId" -> "class_id", "hintImageURL" -> "hint_image_url".
func ToSnake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(rs) + 4)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := rs[i-1]
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel: "class_id" -> "classId". Key yang sudah camelCase tidak berubah.
func ToCamel(s string) string {
	if !strings.ContainsAny(s, "_-") {
		return LowerFirst(s)
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(strings.ToLower(p))
			continue
		}
		rs := []rune(strings.ToLower(p))
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	return b.String()
}

func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	// "ID" -> "id", "URL" -> "url"
	allUpper := true
	for _, r := range rs {
		if !unicode.IsUpper(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return strings.ToLower(s)
	}
	rs[0] = unicode.ToLower(rs[0])
	return string(rs)
}

// ColumnMap: whitelist field aplikasi -> kolom DB (untuk sort/filter dari query string).
type ColumnMap map[string]string

// NewColumnMap: kolom diturunkan dari nama field lewat ToSnake ("studentName" -> "student_name").
func NewColumnMap(fields ...string) ColumnMap {
	m := make(ColumnMap, len(fields))
	for _, f := range fields {
		m[f] = ToSnake(f)
	}
	return m
}

// Resolve menerima key camelCase maupun snake_case; fallback ke def kalau tidak dikenal.
func (m ColumnMap) Resolve(key, def string) string {
	key = strings.TrimSpace(key)
	if col, ok := m[key]; ok {
		return col
	}
	if col, ok := m[ToCamel(key)]; ok {
		return col
	}
	return m[def]
}

// NormalizeKeys mengubah semua key map ke camelCase. aliases memetakan nama lama
// (mis. "order") ke nama kanonik; kalau dua ejaan ada, nilai camelCase yang menang.
func NormalizeKeys(in map[string]any, aliases map[string]string) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	// pass 1: key yang sudah kanonik
	for k, v := range in {
		if canon := canonicalKey(k, aliases); canon == k {
			out[k] = v
		}
	}
	// pass 2: isi yang belum ada dari ejaan lain
	for k, v := range in {
		canon := canonicalKey(k, aliases)
		if canon == k {
			continue
		}
		if _, exists := out[canon]; !exists {
			out[canon] = v
		}
	}
	return out
}

func canonicalKey(k string, aliases map[string]string) string {
	if a, ok := aliases[k]; ok {
		return a
	}
	return ToCamel(k)
}
