package printer

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/vyPal/pifront/lib/ast"
)

// Dump converts a tree into nested maps and slices for encoding as JSON or
// YAML. Every node becomes a map holding its "kind", its "pos" and one entry
// per field.
func Dump(n ast.Node) any {
	if n == nil {
		return nil
	}
	rv := reflect.ValueOf(n)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	out := map[string]any{
		"kind": n.Kind().String(),
		"pos":  n.Position().String(),
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Name == "Pos" || !f.IsExported() {
			continue
		}
		out[lowerFirst(f.Name)] = dumpValue(rv.Field(i))
	}
	return out
}

func dumpValue(v reflect.Value) any {
	switch x := v.Interface().(type) {
	case ast.Node:
		return Dump(x)
	case fmt.Stringer:
		return x.String()
	}
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return []any{}
		}
		list := make([]any, v.Len())
		for i := range list {
			list[i] = dumpValue(v.Index(i))
		}
		return list
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
