// Package schema provides reflection-based derivation of packet and
// record codecs from declarative Go struct descriptions, the idiomatic
// Go stand-in for the original implementation's derive macro
// (original_source/minecraft-derive/src/lib.rs has no equivalent in a
// language without macros). It follows the same "reflect once, cache
// the plan, invoke it many times" shape the teacher repo already uses
// for its own dynamic dispatch (server/service.go's RegisterMethods),
// just turned from "scan a receiver's methods" into "scan a struct's
// fields".
//
// Two struct tags drive derivation:
//
//	`mc:"kind"`      — names a primitive wire kind when the field's Go
//	                   type doesn't already imply one and doesn't
//	                   implement wire.SelfCodec itself.
//	`mc-when:"expr"` — a presence predicate gating an Optional[T] field;
//	                   see predicate.go for the supported expression
//	                   forms.
package schema

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/mcclient/mcclient/wire"
)

type fieldPlan struct {
	index      int
	name       string
	predicate  *predicate // nil => unconditional (or ordinary bool-prefixed Optional)
	isOptional bool
	valueType  reflect.Type // T, when isOptional
	useSelf    bool         // field (or its Optional.Value) implements wire.SelfCodec
	k          kind         // used when !useSelf
}

// Record is the compiled codec plan for one struct type.
type Record struct {
	typ    reflect.Type
	fields []fieldPlan
}

var cache sync.Map // reflect.Type -> *Record

var selfCodecType = reflect.TypeOf((*wire.SelfCodec)(nil)).Elem()

func isOptionalType(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct || t.NumField() != 2 {
		return nil, false
	}
	if t.Field(0).Name != "Valid" || t.Field(0).Type.Kind() != reflect.Bool {
		return nil, false
	}
	if t.Field(1).Name != "Value" {
		return nil, false
	}
	if t.PkgPath() != "github.com/mcclient/mcclient/wire" || t.Name() == "" {
		return nil, false
	}
	return t.Field(1).Type, true
}

func implementsSelf(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(selfCodecType)
}

// Compile derives (or returns the cached) Record for the struct type of
// sample, which must be a struct or a pointer to one. It panics on a
// malformed schema — an mc-when referencing an undeclared or
// later-declared field, a presence predicate on a non-Optional field,
// or a field with neither a usable default kind nor a SelfCodec
// implementation — because these are load-time programmer errors, not
// runtime data errors.
func Compile(sample any) *Record {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := cache.Load(t); ok {
		return cached.(*Record)
	}
	rec, err := compile(t)
	if err != nil {
		panic(err)
	}
	cache.Store(t, rec)
	return rec
}

func compile(t reflect.Type) (*Record, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct", t)
	}

	rec := &Record{typ: t}
	declaredBefore := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		plan := fieldPlan{index: i, name: f.Name}

		valueType, isOpt := isOptionalType(f.Type)
		plan.isOptional = isOpt

		whenTag, hasWhen := f.Tag.Lookup("mc-when")
		if hasWhen {
			if !isOpt {
				return nil, fmt.Errorf("schema: field %s.%s has mc-when but is not Optional-shaped", t, f.Name)
			}
			pred, err := parsePredicate(whenTag)
			if err != nil {
				return nil, fmt.Errorf("schema: field %s.%s: %w", t, f.Name, err)
			}
			for _, ref := range pred.refFields {
				if !declaredBefore[ref] {
					return nil, fmt.Errorf("schema: field %s.%s: mc-when references %q, which is not declared earlier in the record", t, f.Name, ref)
				}
			}
			plan.predicate = pred
		}

		leafType := f.Type
		if isOpt {
			leafType = valueType
			plan.valueType = valueType
		}

		if implementsSelf(leafType) {
			plan.useSelf = true
		} else {
			tagVal := f.Tag.Get("mc")
			k, err := lookupKind(tagVal, leafType)
			if err != nil {
				return nil, fmt.Errorf("schema: field %s.%s: %w", t, f.Name, err)
			}
			plan.k = k
		}

		rec.fields = append(rec.fields, plan)
		declaredBefore[f.Name] = true
	}

	return rec, nil
}

func decodeLeaf(r wire.Reader, plan fieldPlan, leafType reflect.Type) (reflect.Value, error) {
	if plan.useSelf {
		ptr := reflect.New(leafType)
		if err := ptr.Interface().(wire.SelfCodec).DecodeSelf(r); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	return plan.k.decode(r)
}

func encodeLeaf(w wire.Writer, plan fieldPlan, v reflect.Value) error {
	if plan.useSelf {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return ptr.Interface().(wire.SelfCodec).EncodeSelf(w)
	}
	return plan.k.encode(w, v)
}

func sizeLeaf(plan fieldPlan, v reflect.Value) int {
	if plan.useSelf {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return ptr.Interface().(wire.SelfCodec).SizeSelf()
	}
	return plan.k.size(v)
}

// Decode fills the struct pointed to by out by reading its fields in
// declaration order, honoring each field's presence predicate (or, for
// an un-predicated Optional field, the ordinary bool-prefixed Optional
// encoding).
func (rec *Record) Decode(r wire.Reader, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Type() != rec.typ {
		return fmt.Errorf("schema: Decode: out must be a *%s", rec.typ)
	}
	structVal := v.Elem()

	for _, plan := range rec.fields {
		field := structVal.Field(plan.index)

		if !plan.isOptional {
			leaf, err := decodeLeaf(r, plan, field.Type())
			if err != nil {
				return fmt.Errorf("schema: %s.%s: %w", rec.typ, plan.name, err)
			}
			field.Set(leaf)
			continue
		}

		present := false
		var err error
		if plan.predicate != nil {
			present, err = plan.predicate.eval(structVal)
			if err != nil {
				return fmt.Errorf("schema: %s.%s: %w", rec.typ, plan.name, err)
			}
		} else {
			present, err = wire.DecodeBool(r)
			if err != nil {
				return fmt.Errorf("schema: %s.%s presence byte: %w", rec.typ, plan.name, err)
			}
		}

		if !present {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		leaf, err := decodeLeaf(r, plan, plan.valueType)
		if err != nil {
			return fmt.Errorf("schema: %s.%s: %w", rec.typ, plan.name, err)
		}
		opt := reflect.New(field.Type()).Elem()
		opt.FieldByName("Valid").SetBool(true)
		opt.FieldByName("Value").Set(leaf)
		field.Set(opt)
	}
	return nil
}

// Encode writes the fields of in in declaration order. For a predicated
// Optional field, it trusts that Valid already matches the predicate's
// truth (the spec places that invariant on the producer, not the
// codec); for an un-predicated Optional field it writes the ordinary
// presence byte.
func (rec *Record) Encode(w wire.Writer, in any) error {
	structVal := reflect.ValueOf(in)
	for structVal.Kind() == reflect.Pointer {
		structVal = structVal.Elem()
	}
	if structVal.Type() != rec.typ {
		return fmt.Errorf("schema: Encode: in must be a %s", rec.typ)
	}

	for _, plan := range rec.fields {
		field := structVal.Field(plan.index)

		if !plan.isOptional {
			if err := encodeLeaf(w, plan, field); err != nil {
				return fmt.Errorf("schema: %s.%s: %w", rec.typ, plan.name, err)
			}
			continue
		}

		valid := field.FieldByName("Valid").Bool()
		if plan.predicate == nil {
			if err := wire.EncodeBool(w, valid); err != nil {
				return err
			}
		}
		if !valid {
			continue
		}
		if err := encodeLeaf(w, plan, field.FieldByName("Value")); err != nil {
			return fmt.Errorf("schema: %s.%s: %w", rec.typ, plan.name, err)
		}
	}
	return nil
}

// Size sums each field's wire size, per the same presence rules as
// Decode/Encode.
func (rec *Record) Size(in any) int {
	structVal := reflect.ValueOf(in)
	for structVal.Kind() == reflect.Pointer {
		structVal = structVal.Elem()
	}

	total := 0
	for _, plan := range rec.fields {
		field := structVal.Field(plan.index)
		if !plan.isOptional {
			total += sizeLeaf(plan, field)
			continue
		}
		valid := field.FieldByName("Valid").Bool()
		if plan.predicate == nil {
			total++ // presence byte
		}
		if valid {
			total += sizeLeaf(plan, field.FieldByName("Value"))
		}
	}
	return total
}
