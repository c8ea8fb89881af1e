package resource

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

func bsonName(f reflect.StructField) string {
	tag := f.Tag.Get("bson")
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

var columnCache sync.Map // reflect.Type → map[string][]int

// columnIndex maps column names (bson names, "id" aliasing "_id") to
// field index paths, following inline embedded structs.
func columnIndex(t reflect.Type) map[string][]int {
	if v, ok := columnCache.Load(t); ok {
		return v.(map[string][]int)
	}
	idx := map[string][]int{}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name := bsonName(f)
		if name == "-" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = f.Index
		}
	}
	if p, ok := idx["_id"]; ok {
		idx["id"] = p
	}
	columnCache.Store(t, idx)
	return idx
}

// fieldByColumn returns the field for column, or an invalid Value.
func fieldByColumn(v reflect.Value, column string) reflect.Value {
	path, ok := columnIndex(v.Type())[column]
	if !ok {
		return reflect.Value{}
	}
	return v.FieldByIndex(path)
}

func columnValue(v reflect.Value, column string) (string, bool) {
	f := fieldByColumn(v, column)
	if !f.IsValid() {
		return "", false
	}
	return normalize(f.Interface())
}

// normalize renders comparable values as strings for exact matching.
func normalize(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case uuid.UUID:
		return t.String(), true
	case *uuid.UUID:
		if t == nil {
			return "", false
		}
		return t.String(), true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	case bool:
		return strconv.FormatBool(t), true
	case *bool:
		if t == nil {
			return "", false
		}
		return strconv.FormatBool(*t), true
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return t.String(), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return normalize(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}

func timeOf(v reflect.Value) (time.Time, bool) {
	if !v.IsValid() {
		return time.Time{}, false
	}
	switch t := v.Interface().(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

// compareField orders two field values; unknown kinds compare as strings.
func compareField(a, b reflect.Value) int {
	if ta, ok := timeOf(a); ok {
		tb, _ := timeOf(b)
		return ta.Compare(tb)
	}
	if a.Kind() == reflect.Pointer {
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		case b.IsNil():
			return 1
		}
		return compareField(a.Elem(), b.Elem())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp3(a.Int() < b.Int(), a.Int() > b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmp3(a.Uint() < b.Uint(), a.Uint() > b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp3(a.Float() < b.Float(), a.Float() > b.Float())
	}
	sa, _ := normalize(a.Interface())
	sb, _ := normalize(b.Interface())
	return strings.Compare(sa, sb)
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
