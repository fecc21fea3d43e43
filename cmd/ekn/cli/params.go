// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the
// tagged fields of params, which must be a pointer to a struct. Panics
// on a malformed params struct: that is a programming error, not user
// input.
//
//	var params destroyParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("destroy", &params)
//	    },
//	    Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
//	        // params is populated here
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every tagged field of
// params, which must be a pointer to a struct.
//
// Tags:
//
//   - flag:"name" or flag:"name,n" gives the long name and an optional
//     one-letter shorthand. Untagged fields are ignored.
//   - desc:"..." is the help text.
//   - default:"..." is parsed as the field's type; absent means the
//     zero value. Slice defaults are comma-separated.
//
// Field types: string, bool, int, [time.Duration], []string. Embedded
// structs such as [JSONOutput] contribute their own tagged fields.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	specs, err := collectFlagSpecs(value.Elem())
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := spec.register(flagSet); err != nil {
			return fmt.Errorf("field %s: %w", spec.field, err)
		}
	}
	return nil
}

// flagSpec is one tagged struct field awaiting registration.
type flagSpec struct {
	field        string
	target       any
	name         string
	shorthand    string
	description  string
	defaultValue string
}

// collectFlagSpecs walks structValue, descending into embedded
// structs, and returns a spec per tagged field in declaration order.
func collectFlagSpecs(structValue reflect.Value) ([]flagSpec, error) {
	var specs []flagSpec
	structType := structValue.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := collectFlagSpecs(fieldValue)
			if err != nil {
				return nil, fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			specs = append(specs, embedded...)
			continue
		}

		tag, tagged := field.Tag.Lookup("flag")
		if !tagged || tag == "" {
			continue
		}
		if !fieldValue.CanAddr() {
			return nil, fmt.Errorf("field %s: not addressable", field.Name)
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		specs = append(specs, flagSpec{
			field:        field.Name,
			target:       fieldValue.Addr().Interface(),
			name:         name,
			shorthand:    shorthand,
			description:  field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
		})
	}
	return specs, nil
}

func (s flagSpec) register(flagSet *pflag.FlagSet) error {
	switch target := s.target.(type) {
	case *string:
		flagSet.StringVarP(target, s.name, s.shorthand, s.defaultValue, s.description)
	case *bool:
		value, err := parseDefault(s, strconv.ParseBool)
		if err != nil {
			return err
		}
		flagSet.BoolVarP(target, s.name, s.shorthand, value, s.description)
	case *int:
		value, err := parseDefault(s, strconv.Atoi)
		if err != nil {
			return err
		}
		flagSet.IntVarP(target, s.name, s.shorthand, value, s.description)
	case *time.Duration:
		value, err := parseDefault(s, time.ParseDuration)
		if err != nil {
			return err
		}
		flagSet.DurationVarP(target, s.name, s.shorthand, value, s.description)
	case *[]string:
		var value []string
		if s.defaultValue != "" {
			value = strings.Split(s.defaultValue, ",")
		}
		flagSet.StringSliceVarP(target, s.name, s.shorthand, value, s.description)
	default:
		return fmt.Errorf("unsupported type %T for flag --%s", s.target, s.name)
	}
	return nil
}

// parseDefault parses the default tag with parse, or returns the zero
// value when the tag is absent.
func parseDefault[T any](s flagSpec, parse func(string) (T, error)) (T, error) {
	var zero T
	if s.defaultValue == "" {
		return zero, nil
	}
	value, err := parse(s.defaultValue)
	if err != nil {
		return zero, fmt.Errorf("default for --%s: %w", s.name, err)
	}
	return value, nil
}
