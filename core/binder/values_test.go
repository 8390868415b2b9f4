package binder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutshell-sh/nutshell/core/command"
)

func TestTypeCheckerStrict(t *testing.T) {
	tc := TypeChecker{}

	cases := []struct {
		name  string
		typ   command.ValueType
		value any
		want  any
		ok    bool
	}{
		{"string accepts string", command.TypeString, "x", "x", true},
		{"string rejects int", command.TypeString, 7, nil, false},
		{"int accepts int", command.TypeInt, 7, 7, true},
		{"int rejects numeric string", command.TypeInt, "7", nil, false},
		{"bool accepts bool", command.TypeBool, true, true, true},
		{"bool rejects string", command.TypeBool, "true", nil, false},
		{"float accepts float", command.TypeFloat, 1.5, 1.5, true},
		{"float rejects int", command.TypeFloat, 1, nil, false},
		{"slice accepts slice", command.TypeStringSlice, []string{"a"}, []string{"a"}, true},
		{"slice rejects string", command.TypeStringSlice, "a", nil, false},
		{"any accepts anything", command.TypeAny, 3.14, 3.14, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := command.NewParameter("P", c.typ)
			got, err := tc.BindValue(p, c.value, false)
			if c.ok {
				require.NoError(t, err)
				assert.Equal(t, c.want, got)
			} else {
				var bindErr *BindError
				require.ErrorAs(t, err, &bindErr)
				assert.Equal(t, CodeCannotConvert, bindErr.Code)
			}
		})
	}
}

func TestTypeCheckerCoerce(t *testing.T) {
	tc := TypeChecker{}

	cases := []struct {
		name  string
		typ   command.ValueType
		value any
		want  any
		ok    bool
	}{
		{"string from int", command.TypeString, 7, "7", true},
		{"int from string", command.TypeInt, " 42 ", 42, true},
		{"int from garbage", command.TypeInt, "x", nil, false},
		{"int from whole float", command.TypeInt, 3.0, 3, true},
		{"int from fractional float", command.TypeInt, 3.5, nil, false},
		{"float from string", command.TypeFloat, "2.5", 2.5, true},
		{"float from int", command.TypeFloat, 2, 2.0, true},
		{"bool from string", command.TypeBool, "true", true, true},
		{"switch from string", command.TypeSwitch, "0", false, true},
		{"slice from string", command.TypeStringSlice, "a", []string{"a"}, true},
		{"slice from any slice", command.TypeStringSlice, []any{1, "b"}, []string{"1", "b"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := command.NewParameter("P", c.typ)
			got, err := tc.BindValue(p, c.value, true)
			if c.ok {
				require.NoError(t, err)
				assert.Equal(t, c.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTypeCheckerNilBindsUntouched(t *testing.T) {
	tc := TypeChecker{}
	p := command.NewParameter("P", command.TypeInt)
	got, err := tc.BindValue(p, nil, false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTypeCheckerValidator(t *testing.T) {
	tc := TypeChecker{}

	p := command.NewParameter("Depth", command.TypeInt).WithValidator(func(v any) error {
		if v.(int) < 0 {
			return errors.New("must not be negative")
		}
		return nil
	})

	_, err := tc.BindValue(p, 3, false)
	assert.NoError(t, err)

	_, err = tc.BindValue(p, -1, false)
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, CodeValidationFailed, bindErr.Code)
}

func TestSwallowableValidatorPassesThrough(t *testing.T) {
	tc := TypeChecker{}
	p := command.NewParameter("P", command.TypeString).WithValidator(func(any) error {
		return Swallow(errors.New("soft failure"))
	})
	_, err := tc.BindValue(p, "x", false)
	require.Error(t, err)
	assert.True(t, IsSwallowable(err))
}

func TestIsSwallowable(t *testing.T) {
	base := errors.New("boom")
	assert.False(t, IsSwallowable(base))
	assert.True(t, IsSwallowable(Swallow(base)))
	assert.False(t, IsSwallowable(nil))
	assert.Nil(t, Swallow(nil))
}
