package php

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Kind selects how a Value is written.
type Kind int

const (
	KindAuto Kind = iota // derive the kind from the Go type of the raw value
	KindBoolean
	KindNumber
	KindInteger
	KindFloat
	KindString
	KindArray
	KindConstant // raw value is a constant name, written verbatim
	KindNull
	KindRaw // raw value is source text, written verbatim
	KindOther
)

var kindNames = [...]string{
	KindAuto:     "auto",
	KindBoolean:  "boolean",
	KindNumber:   "number",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindString:   "string",
	KindArray:    "array",
	KindConstant: "constant",
	KindNull:     "null",
	KindRaw:      "raw",
	KindOther:    "other",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind resolves a kind by name. The empty string means KindAuto.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindAuto, nil
	}
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return KindOther, errors.Mark(errors.Newf("unknown value kind %q", s), ErrUnrecognizedEnum)
}

// ArrayOutput selects the layout of composite values.
type ArrayOutput int

const (
	OutputMultiLine ArrayOutput = iota
	OutputSingleLine
)

func (o ArrayOutput) String() string {
	switch o {
	case OutputMultiLine:
		return "multi"
	case OutputSingleLine:
		return "single"
	}
	return "output(" + strconv.Itoa(int(o)) + ")"
}

// ParseArrayOutput resolves "single" or "multi" (the default for "").
func ParseArrayOutput(s string) (ArrayOutput, error) {
	switch strings.ToLower(s) {
	case "", "multi", "multi-line", "multiline":
		return OutputMultiLine, nil
	case "single", "single-line", "singleline":
		return OutputSingleLine, nil
	}
	return OutputMultiLine, errors.Wrapf(ErrUnrecognizedArrayOutput, "%q", s)
}

// ArrayElem is one entry of an Array. A nil Key takes the next integer index.
type ArrayElem struct {
	Key   any
	Value any
}

// Array is an ordered list of key/value pairs.
type Array []ArrayElem

// List builds an Array with sequential integer keys.
func List(values ...any) Array {
	a := make(Array, 0, len(values))
	for _, v := range values {
		a = append(a, ArrayElem{Value: v})
	}
	return a
}

// Set appends a keyed entry.
func (a Array) Set(key, value any) Array {
	return append(a, ArrayElem{Key: key, Value: value})
}

// Append appends an entry with the next integer key.
func (a Array) Append(value any) Array {
	return append(a, ArrayElem{Value: value})
}

// Object is a keyed property bag written as Class::__set_state(array(...)).
type Object struct {
	Class      string
	Properties Array
}

// Value is a literal.
type Value struct {
	raw         any
	kind        Kind
	arrayOutput ArrayOutput
}

// NewValue creates a value whose kind is derived from v.
func NewValue(v any) *Value {
	return &Value{raw: v, kind: KindAuto}
}

// NewTypedValue creates a value with an explicit kind.
func NewTypedValue(v any, k Kind) *Value {
	return &Value{raw: v, kind: k}
}

// SetRaw sets the raw value.
func (v *Value) SetRaw(raw any) *Value {
	v.raw = raw
	return v
}

// Raw returns the raw value.
func (v *Value) Raw() any {
	return v.raw
}

// SetKind sets the kind.
func (v *Value) SetKind(k Kind) *Value {
	v.kind = k
	return v
}

// Kind returns the declared kind.
func (v *Value) Kind() Kind {
	return v.kind
}

// SetArrayOutput sets the layout for composite values. The mode is checked
// when the value is rendered.
func (v *Value) SetArrayOutput(o ArrayOutput) *Value {
	v.arrayOutput = o
	return v
}

// ArrayOutput returns the layout for composite values.
func (v *Value) ArrayOutput() ArrayOutput {
	return v.arrayOutput
}

func (v *Value) Render() (string, error) { return v.RenderWith(nil) }
func (v *Value) String() string          { return stringify(v) }

// RenderWith writes the value as a PHP literal.
func (v *Value) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	if v.arrayOutput != OutputMultiLine && v.arrayOutput != OutputSingleLine {
		return "", errors.Wrapf(ErrUnrecognizedArrayOutput,
			"wrong output value %d given, allowed values are %d and %d",
			int(v.arrayOutput), int(OutputMultiLine), int(OutputSingleLine))
	}

	kind := v.effectiveKind()
	switch kind {
	case KindBoolean:
		return boolLiteral(truthy(v.raw)), nil
	case KindNumber, KindInteger, KindFloat, KindConstant, KindRaw:
		return scalarText(v.raw), nil
	case KindString:
		return quote(scalarText(v.raw)), nil
	case KindArray:
		return v.element(v.raw, 1, 0, f)
	case KindNull:
		return "null", nil
	}
	return "", valuef("the kind %s cannot be used to generate a value", kind)
}

func (v *Value) effectiveKind() Kind {
	if v.kind == KindAuto {
		return discoverKind(v.raw)
	}
	return v.kind
}

func discoverKind(raw any) Kind {
	switch raw.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case float32, float64:
		return KindFloat
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case Array, Object, *Object:
		return KindArray
	}
	switch reflect.ValueOf(raw).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return KindArray
	case reflect.Pointer:
		if reflect.Indirect(reflect.ValueOf(raw)).Kind() == reflect.Struct {
			return KindArray
		}
	}
	return KindOther
}

// maxDepth bounds how deep element recurses. Cyclic data such as a struct
// pointing to itself is reported instead of overflowing the stack.
const maxDepth = 256

// element writes one composite element. level is the indentation level used
// for the entries of a nested array, depth counts the recursion.
func (v *Value) element(data any, level, depth int, f *config.Format) (string, error) {
	if depth > maxDepth {
		return "", valuef("value nested deeper than %d levels, possibly a circular reference", maxDepth)
	}
	switch d := data.(type) {
	case nil:
		return "null", nil
	case bool:
		return boolLiteral(d), nil
	case string:
		return quote(d), nil
	case Array:
		return v.array(d, level, depth, f)
	case Object:
		return v.object(d, level, depth, f)
	case *Object:
		if d == nil {
			return "null", nil
		}
		return v.object(*d, level, depth, f)
	case *Value:
		if d == nil {
			return "null", nil
		}
		if d.effectiveKind() == KindArray {
			return v.element(d.raw, level, depth+1, f)
		}
		return d.RenderWith(f)
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return scalarText(data), nil
	case reflect.String:
		return quote(rv.String()), nil
	case reflect.Bool:
		return boolLiteral(rv.Bool()), nil
	case reflect.Slice, reflect.Array:
		a := make(Array, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			a = append(a, ArrayElem{Value: rv.Index(i).Interface()})
		}
		return v.array(a, level, depth, f)
	case reflect.Map:
		return v.array(mapToArray(rv), level, depth, f)
	case reflect.Struct:
		return v.object(structToObject(rv), level, depth, f)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null", nil
		}
		return v.element(rv.Elem().Interface(), level, depth+1, f)
	}
	return "", valuef("cannot generate a value for %T", data)
}

func (v *Value) array(a Array, level, depth int, f *config.Format) (string, error) {
	single := v.arrayOutput == OutputSingleLine || len(a) == 0
	keys, err := resolveKeys(a)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("array(")
	if !single {
		b.WriteString(f.Newline)
	}
	for i, el := range a {
		val, err := v.element(el.Value, level+1, depth+1, f)
		if err != nil {
			return "", err
		}
		last := i == len(a)-1
		if single {
			b.WriteString(keys[i] + " => " + val)
			if !last {
				b.WriteString(", ")
			}
			continue
		}
		b.WriteString(strings.Repeat(f.IndentString, level))
		b.WriteString(keys[i] + " => " + val)
		if !last {
			b.WriteString(",")
		}
		b.WriteString(f.Newline)
	}
	if !single {
		b.WriteString(strings.Repeat(f.IndentString, level-1))
	}
	b.WriteString(")")

	return b.String(), nil
}

func (v *Value) object(o Object, level, depth int, f *config.Format) (string, error) {
	class := o.Class
	if class == "" {
		class = "stdClass"
	}
	props, err := v.array(o.Properties, level, depth, f)
	if err != nil {
		return "", err
	}
	return class + "::__set_state(" + props + ")", nil
}

// resolveKeys returns the literal for every key of a. Integer keys, and
// strings holding a canonical integer, take part in the index sequence.
func resolveKeys(a Array) ([]string, error) {
	keys := make([]string, len(a))
	var next int64
	for i, el := range a {
		if el.Key == nil {
			keys[i] = strconv.FormatInt(next, 10)
			next++
			continue
		}
		n, isInt, err := arrayKey(el.Key)
		if err != nil {
			return nil, err
		}
		if !isInt {
			keys[i] = quote(reflect.ValueOf(el.Key).String())
			continue
		}
		keys[i] = strconv.FormatInt(n, 10)
		if n >= next {
			next = n + 1
		}
	}
	return keys, nil
}

func arrayKey(key any) (n int64, isInt bool, err error) {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), true, nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, true, nil
		}
		return 0, true, nil
	case reflect.String:
		s := rv.String()
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
			return n, true, nil
		}
		return 0, false, nil
	}
	return 0, false, valuef("array key of type %T is not supported", key)
}

// mapToArray orders map entries by key: integers numerically before strings.
func mapToArray(rv reflect.Value) Array {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		ni, iInt, _ := arrayKey(keys[i].Interface())
		nj, jInt, _ := arrayKey(keys[j].Interface())
		switch {
		case iInt && jInt:
			return ni < nj
		case iInt != jInt:
			return iInt
		}
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	a := make(Array, 0, len(keys))
	for _, k := range keys {
		a = append(a, ArrayElem{Key: k.Interface(), Value: rv.MapIndex(k).Interface()})
	}
	return a
}

// structToObject collects the exported fields of a struct. A `php` tag
// renames a field, `php:"-"` skips it.
func structToObject(rv reflect.Value) Object {
	t := rv.Type()
	o := Object{Class: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("php"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		o.Properties = o.Properties.Set(name, rv.Field(i).Interface())
	}
	return o
}

var quoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote writes s as a single-quoted PHP string.
func quote(s string) string {
	return "'" + quoter.Replace(s) + "'"
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// scalarText converts a raw value to text the way PHP casts to string.
func scalarText(raw any) string {
	switch r := raw.(type) {
	case nil:
		return ""
	case string:
		return r
	case bool:
		if r {
			return "1"
		}
		return ""
	case float64:
		return formatFloat(r)
	case float32:
		return formatFloat(float64(r))
	case fmt.Stringer:
		return r.String()
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(raw)
}

func formatFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NAN"
	case math.IsInf(x, 1):
		return "INF"
	case math.IsInf(x, -1):
		return "-INF"
	}
	if a := math.Abs(x); a == 0 || (a >= 1e-4 && a < 1e15) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	// PHP writes exponents as 1.0E+15 and 1.5E-7.
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(x, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "E" + sign + digits
}

// truthy applies PHP's boolean conversion.
func truthy(raw any) bool {
	switch r := raw.(type) {
	case nil:
		return false
	case bool:
		return r
	case string:
		return r != "" && r != "0"
	case Array:
		return len(r) > 0
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
