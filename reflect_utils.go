package yamltree

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by the reflection driver and PresenceMap.
// Priority: yaml tag name > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	for _, tag := range []string{"yaml", "json"} {
		t, ok := sf.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if t == "-" {
			return "-"
		}
		if i := strings.IndexByte(t, ','); i >= 0 {
			t = t[:i]
		}
		if t != "" {
			return t
		}
	}
	return sf.Name
}

type fieldInfo struct {
	name       string
	index      int
	omitEmpty  bool
	required   bool
	defaultVal string
	hasDefault bool
}

type structInfo struct {
	fields []fieldInfo
	byName map[string]int
	desc   *Descriptor
}

var structCache sync.Map // reflect.Type -> *structInfo

func cachedStructInfo(t reflect.Type) *structInfo {
	if v, ok := structCache.Load(t); ok {
		return v.(*structInfo)
	}
	info := buildStructInfo(t)
	v, _ := structCache.LoadOrStore(t, info)
	return v.(*structInfo)
}

func buildStructInfo(t reflect.Type) *structInfo {
	info := &structInfo{byName: map[string]int{}, desc: &Descriptor{Kind: StructureClass, Name: t.String()}}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" {
			continue
		}
		f := fieldInfo{name: name, index: i}
		if opts, ok := sf.Tag.Lookup("yaml"); ok {
			for _, o := range strings.Split(opts, ",")[1:] {
				switch strings.TrimSpace(o) {
				case "omitempty":
					f.omitEmpty = true
				case "required":
					f.required = true
				}
			}
		}
		f.defaultVal, f.hasDefault = sf.Tag.Lookup("default")
		el := Element{Name: name}
		if c, ok := sf.Tag.Lookup("comment"); ok && c != "" {
			el.Comments = strings.Split(c, "|")
		}
		info.byName[name] = len(info.fields)
		info.fields = append(info.fields, f)
		info.desc.Elements = append(info.desc.Elements, el)
	}
	return info
}

// knownNames lists the external keys of the struct, sorted, for messages.
func (s *structInfo) knownNames(rename func(string) string) []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = rename(f.name)
	}
	sort.Strings(out)
	return out
}
