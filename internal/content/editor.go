package content

import (
	"reflect"
	"strings"
)

// EditorDraft returns doc as a JSON-ready tree in which every section, list
// and field is present, including the ones the stored document omits. Legacy
// sections (tagged editor:"legacy") are only included when the document
// still has them.
func EditorDraft(doc *SiteContent) map[string]interface{} {
	if doc == nil {
		doc = &SiteContent{}
	}
	return shapeValue(reflect.ValueOf(doc)).(map[string]interface{})
}

// EditorTemplates returns a blank item for every list in the document,
// keyed by the list's JSON path with indices dropped, e.g. "games" or
// "games.screenshots". String lists map to "".
func EditorTemplates() map[string]interface{} {
	out := make(map[string]interface{})
	collectTemplates(reflect.TypeOf(SiteContent{}), "", out)
	return out
}

func shapeValue(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return shapeValue(reflect.New(v.Type().Elem()).Elem())
		}
		return shapeValue(v.Elem())
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]interface{}, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			name, ok := jsonFieldName(field)
			if !ok {
				continue
			}
			fv := v.Field(i)
			if isLegacyField(field) && fv.Kind() == reflect.Ptr && fv.IsNil() {
				continue
			}
			out[name] = shapeValue(fv)
		}
		return out
	case reflect.Slice:
		items := make([]interface{}, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, shapeValue(v.Index(i)))
		}
		return items
	default:
		return v.Interface()
	}
}

func collectTemplates(t reflect.Type, prefix string, out map[string]interface{}) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := jsonFieldName(field)
		if !ok || isLegacyField(field) {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Slice:
			out[path] = shapeValue(reflect.New(ft.Elem()).Elem())
			collectTemplates(ft.Elem(), path, out)
		case reflect.Struct:
			collectTemplates(ft, path, out)
		}
	}
}

func jsonFieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return "", false
	}
	if name == "" {
		name = field.Name
	}
	return name, true
}

func isLegacyField(field reflect.StructField) bool {
	return field.Tag.Get("editor") == "legacy"
}
