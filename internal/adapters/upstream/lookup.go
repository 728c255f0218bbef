package upstream

import (
	"strconv"
	"strings"
)

// Safe nested lookup with dot paths on decoded JSON maps. Provider
// payloads drift between API versions, so normalizers probe several
// alias paths per canonical field.

func Lookup(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// Str returns the string at path or "".
func Str(m map[string]any, path string) string {
	if v := Lookup(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// FirstStr returns the first non-empty string among paths, or nil.
func FirstStr(m map[string]any, paths ...string) *string {
	for _, p := range paths {
		if s := Str(m, p); s != "" {
			return &s
		}
	}
	return nil
}

// FirstFloat returns a number from the first matching path, accepting
// float64/int and strings like "8,0".
func FirstFloat(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := Lookup(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// FirstID stringifies the first id-ish value among paths: integers lose
// their float formatting ("7453", not "7453.000000").
func FirstID(m map[string]any, paths ...string) string {
	for _, k := range paths {
		switch v := Lookup(m, k).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}
