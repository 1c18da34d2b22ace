package yamltree

import (
	"context"
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type decodeState struct {
	ctx      context.Context
	cfg      *Config
	presence PresenceMap // nil unless presence is collected
}

// DecodeNode stores the content of n in the value pointed to by out.
func DecodeNode(ctx context.Context, cfg Config, n Node, out any) error {
	_, err := decodeNode(ctx, &cfg, n, out, false)
	return err
}

func decodeNode(ctx context.Context, cfg *Config, n Node, out any, collect bool) (PresenceMap, error) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("yamltree: decode target must be a non-nil pointer, got %T", out)
	}
	s := &decodeState{ctx: ctx, cfg: cfg}
	if collect {
		s.presence = PresenceMap{}
	}
	if err := s.decode(n, rv.Elem(), ""); err != nil {
		return nil, err
	}
	return s.presence, nil
}

func (s *decodeState) rename(name string) string {
	if s.cfg.NamingStrategy == nil {
		return name
	}
	return s.cfg.NamingStrategy(name)
}

func (s *decodeState) mark(field string, p Presence) {
	if s.presence != nil {
		s.presence[field] |= p
	}
}

func (s *decodeState) decode(n Node, v reflect.Value, field string) error {
	t := v.Type()
	if t == nodeType {
		v.Set(reflect.ValueOf(n))
		return nil
	}
	// Tags only select types for registered interfaces; elsewhere they are
	// informational.
	if tg, ok := n.(*Tagged); ok && !(t.Kind() == reflect.Interface && s.cfg.Types.has(t)) {
		n = tg.Inner()
	}
	if _, isNull := n.(*Null); isNull {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			v.Set(reflect.Zero(t))
			return nil
		}
		return newError(CodeUnexpectedNull, n.Path(), nil)
	}
	if t.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return s.decode(n, v.Elem(), field)
	}
	if c, ok := s.cfg.Codecs.Lookup(t); ok {
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		out, err := c.DecodeAny(s.ctx, sc.Content())
		if err != nil {
			e := errInvalidScalar(sc, t.String())
			e.Cause = err
			return e
		}
		v.Set(reflect.ValueOf(out))
		return nil
	}
	if t == charType {
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		r, err := sc.ToChar()
		if err != nil {
			return err
		}
		v.SetInt(int64(r))
		return nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) && t.Kind() != reflect.Interface {
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		if err := v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(sc.Content())); err != nil {
			e := errInvalidScalar(sc, t.String())
			e.Cause = err
			return e
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		b, err := sc.ToBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		i, ok := ParseInt(sc.Content(), t.Bits())
		if !ok {
			return errInvalidScalar(sc, "integer")
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		u, ok := ParseUint(sc.Content(), t.Bits())
		if !ok {
			return errInvalidScalar(sc, "unsigned integer")
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		f, ok := ParseFloat(sc.Content(), t.Bits())
		if !ok {
			return errInvalidScalar(sc, "floating point")
		}
		v.SetFloat(f)
	case reflect.String:
		sc, err := RequireScalar(n)
		if err != nil {
			return err
		}
		v.SetString(sc.Content())
	case reflect.Interface:
		return s.decodeInterface(n, v, field)
	case reflect.Slice:
		l, err := RequireList(n)
		if err != nil {
			return err
		}
		out := reflect.MakeSlice(t, l.Len(), l.Len())
		for i, it := range l.items {
			if err := s.decode(it, out.Index(i), field+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
		v.Set(out)
	case reflect.Array:
		l, err := RequireList(n)
		if err != nil {
			return err
		}
		if l.Len() != t.Len() {
			return errIncorrectType(n, fmt.Sprintf("a list of %d items", t.Len()))
		}
		for i, it := range l.items {
			if err := s.decode(it, v.Index(i), field+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case reflect.Map:
		return s.decodeMap(n, v, field)
	case reflect.Struct:
		m, err := RequireMap(n)
		if err != nil {
			return err
		}
		return s.decodeStruct(m, v, field)
	default:
		return errIncorrectType(n, "a value of type "+t.String())
	}
	return nil
}

func (s *decodeState) decodeInterface(n Node, v reflect.Value, field string) error {
	t := v.Type()
	if s.cfg.Types.has(t) {
		return s.decodePolymorphic(n, v, field)
	}
	if t.NumMethod() != 0 {
		return errIncorrectType(n, "a registered implementation of "+t.String())
	}
	if val := ToValue(n); val != nil {
		v.Set(reflect.ValueOf(val))
	} else {
		v.Set(reflect.Zero(t))
	}
	return nil
}

func (s *decodeState) decodePolymorphic(n Node, v reflect.Value, field string) error {
	iface := v.Type()
	var (
		name  string
		inner Node
	)
	switch s.cfg.PolymorphismStyle {
	case PolymorphismProperty:
		m, err := RequireMap(n)
		if err != nil {
			return err
		}
		prop := s.cfg.PolymorphismPropertyName
		typeNode, ok := m.Get(prop)
		if !ok {
			return newError(CodeMissingTypeProperty, m.Path(), map[string]string{"key": prop})
		}
		sc, err := RequireScalar(typeNode)
		if err != nil {
			return err
		}
		name = sc.Content()
		rest := make([]MapEntry, 0, m.Len()-1)
		for _, e := range m.entries {
			if e.Key.Content() != prop {
				rest = append(rest, e)
			}
		}
		if inner, err = NewMap(rest, m.Path()); err != nil {
			return err
		}
	default:
		tg, ok := n.(*Tagged)
		if !ok {
			return errIncorrectType(n, "a tagged value")
		}
		name, inner = strings.TrimPrefix(tg.Tag(), "!"), tg.Inner()
	}
	concrete, ok := s.cfg.Types.Lookup(iface, name)
	if !ok {
		return newError(CodeUnknownPolymorphicType, n.Path(), map[string]string{
			"name":  name,
			"known": strings.Join(s.cfg.Types.Names(iface), ", "),
		})
	}
	val := reflect.New(concrete).Elem()
	if err := s.decode(inner, val, field); err != nil {
		return err
	}
	v.Set(val)
	return nil
}

func (s *decodeState) decodeMap(n Node, v reflect.Value, field string) error {
	m, err := RequireMap(n)
	if err != nil {
		return err
	}
	t := v.Type()
	out := reflect.MakeMapWithSize(t, m.Len())
	for _, e := range m.entries {
		k := reflect.New(t.Key()).Elem()
		if err := s.decode(e.Key, k, field); err != nil {
			return err
		}
		val := reflect.New(t.Elem()).Elem()
		if err := s.decode(e.Value, val, joinField(field, e.Key.Content())); err != nil {
			return err
		}
		out.SetMapIndex(k, val)
	}
	v.Set(out)
	return nil
}

func joinField(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (s *decodeState) lookupField(info *structInfo, key string) (int, bool) {
	if s.cfg.NamingStrategy == nil {
		i, ok := info.byName[key]
		return i, ok
	}
	for i, f := range info.fields {
		if s.rename(f.name) == key {
			return i, true
		}
	}
	return 0, false
}

func (s *decodeState) decodeStruct(m *Map, v reflect.Value, field string) error {
	info := cachedStructInfo(v.Type())
	seen := make([]bool, len(info.fields))
	for _, e := range m.entries {
		idx, ok := s.lookupField(info, e.Key.Content())
		if !ok {
			if s.cfg.UnknownPolicy == UnknownStrict {
				return newError(CodeUnknownProperty, e.Key.Path(), map[string]string{
					"key":   e.Key.Content(),
					"known": strings.Join(info.knownNames(s.rename), ", "),
				})
			}
			continue
		}
		seen[idx] = true
		f := info.fields[idx]
		path := joinField(field, f.name)
		s.mark(path, PresenceSeen)
		if _, isNull := e.Value.(*Null); isNull {
			s.mark(path, PresenceWasNull)
		}
		if err := s.decode(e.Value, v.Field(f.index), path); err != nil {
			return wrapPropertyError(err, e)
		}
	}
	for i, f := range info.fields {
		if seen[i] {
			continue
		}
		switch {
		case f.required:
			return newError(CodeMissingProperty, m.Path(), map[string]string{"key": s.rename(f.name)})
		case f.hasDefault:
			path := joinField(field, f.name)
			def := NewScalar(f.defaultVal, m.Path())
			if err := s.decode(def, v.Field(f.index), path); err != nil {
				return err
			}
			s.mark(path, PresenceDefaultApplied)
		}
	}
	return nil
}

// wrapPropertyError adds the property name to errors raised for the value
// node itself. Errors from deeper nodes already name their own location.
func wrapPropertyError(err error, e MapEntry) error {
	ye, ok := AsError(err)
	if !ok || !ye.Path.Equal(e.Value.Path()) {
		return err
	}
	switch ye.Code {
	case CodeInvalidScalar, CodeUnexpectedNull, CodeIncorrectType:
	default:
		return err
	}
	w := newError(CodeInvalidPropertyValue, ye.Path, map[string]string{"key": e.Key.Content(), "reason": ye.Message})
	w.Cause = ye
	return w
}
