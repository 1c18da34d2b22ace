package yamltree

import (
	"context"
	"encoding"
	"reflect"
	"sort"
	"strconv"
)

// Char is a rune that is written and read as a one-character string.
type Char rune

// Enum is implemented by types written as the quoted name of an enum
// constant. Reading such types back requires encoding.TextUnmarshaler.
type Enum interface {
	EnumName() string
}

var (
	nodeType            = reflect.TypeFor[Node]()
	charType            = reflect.TypeFor[Char]()
	enumType            = reflect.TypeFor[Enum]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type nodeEncoder interface {
	EncodeNode(Node) error
}

type encodeState struct {
	ctx context.Context
	enc Encoder
	cfg *Config
}

// EncodeValue drives enc with the callbacks for v.
func EncodeValue(ctx context.Context, enc Encoder, cfg Config, v any) error {
	s := &encodeState{ctx: ctx, enc: enc, cfg: &cfg}
	return s.encode(reflect.ValueOf(v))
}

func (s *encodeState) encode(v reflect.Value) error {
	if !v.IsValid() {
		return s.enc.EncodeNull()
	}
	t := v.Type()
	if (t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface) && v.IsNil() {
		return s.enc.EncodeNull()
	}
	if t.Implements(nodeType) && t.Kind() != reflect.Interface {
		ne, ok := s.enc.(nodeEncoder)
		if !ok {
			return errEncode("Encoder %T cannot write node trees", s.enc)
		}
		return ne.EncodeNode(v.Interface().(Node))
	}
	if c, ok := s.cfg.Codecs.Lookup(t); ok {
		text, err := c.EncodeAny(s.ctx, v.Interface())
		if err != nil {
			e := errEncode("Cannot encode %s: %v", t, err)
			e.Cause = err
			return e
		}
		return s.enc.EncodeString(text)
	}
	if t == charType {
		return s.enc.EncodeChar(rune(v.Int()))
	}
	if t.Implements(enumType) {
		return s.enc.EncodeEnum(v.Interface().(Enum).EnumName())
	}
	if t.Implements(textMarshalerType) {
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			e := errEncode("Cannot encode %s: %v", t, err)
			e.Cause = err
			return e
		}
		return s.enc.EncodeString(string(b))
	}

	switch t.Kind() {
	case reflect.Bool:
		return s.enc.EncodeBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return s.enc.EncodeInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return s.enc.EncodeUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		return s.enc.EncodeFloat(v.Float(), t.Bits())
	case reflect.String:
		return s.enc.EncodeString(v.String())
	case reflect.Pointer:
		return s.encode(v.Elem())
	case reflect.Interface:
		return s.encodeInterface(v)
	case reflect.Slice, reflect.Array:
		return s.encodeList(v)
	case reflect.Map:
		return s.encodeMap(v)
	case reflect.Struct:
		return s.encodeStruct(v)
	}
	return errEncode("Unsupported type %s", t)
}

func (s *encodeState) encodeInterface(v reflect.Value) error {
	iface, elem := v.Type(), v.Elem()
	if s.cfg.Types.has(iface) {
		name, ok := s.cfg.Types.NameOf(iface, elem.Type())
		if !ok {
			return errEncode("Type %s is not registered as an implementation of %s", elem.Type(), iface)
		}
		s.enc.SetPolymorphicTypeName(name)
	}
	return s.encode(elem)
}

var listDescriptor = &Descriptor{Kind: StructureList}

func (s *encodeState) encodeList(v reflect.Value) error {
	if err := s.enc.BeginStructure(listDescriptor); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if err := s.enc.EncodeElement(listDescriptor, i); err != nil {
			return err
		}
		if err := s.encode(v.Index(i)); err != nil {
			return err
		}
	}
	return s.enc.EndStructure(listDescriptor)
}

var mapDescriptor = &Descriptor{Kind: StructureMap}

func mapKeyText(k reflect.Value) (string, bool) {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "", false
		}
		k = k.Elem()
	}
	if k.Type().Implements(textMarshalerType) {
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		return string(b), err == nil
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), true
	case reflect.Bool:
		return strconv.FormatBool(k.Bool()), true
	}
	return "", false
}

// encodeMap writes entries sorted by key text so output is deterministic.
func (s *encodeState) encodeMap(v reflect.Value) error {
	type kv struct {
		key string
		val reflect.Value
	}
	entries := make([]kv, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, ok := mapKeyText(iter.Key())
		if !ok {
			return errEncode("Unsupported map key type %s", v.Type().Key())
		}
		entries = append(entries, kv{key: k, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	if err := s.enc.BeginStructure(mapDescriptor); err != nil {
		return err
	}
	for i, e := range entries {
		if err := s.enc.EncodeElement(mapDescriptor, 2*i); err != nil {
			return err
		}
		if err := s.enc.EncodeString(e.key); err != nil {
			return err
		}
		if err := s.enc.EncodeElement(mapDescriptor, 2*i+1); err != nil {
			return err
		}
		if err := s.encode(e.val); err != nil {
			return err
		}
	}
	return s.enc.EndStructure(mapDescriptor)
}

func (s *encodeState) encodeStruct(v reflect.Value) error {
	info := cachedStructInfo(v.Type())
	desc := info.desc
	if len(info.fields) == 0 {
		desc = &Descriptor{Kind: StructureObject, Name: info.desc.Name}
	}
	if err := s.enc.BeginStructure(desc); err != nil {
		return err
	}
	for i, f := range info.fields {
		fv := v.Field(f.index)
		if fv.IsZero() && (f.omitEmpty || !s.enc.ShouldEncodeElementDefault(desc, i)) {
			continue
		}
		if err := s.enc.EncodeElement(desc, i); err != nil {
			return err
		}
		if err := s.encode(fv); err != nil {
			return err
		}
	}
	return s.enc.EndStructure(desc)
}
