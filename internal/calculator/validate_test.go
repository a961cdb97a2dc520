package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ValidateSuite struct {
	suite.Suite
	def Definition
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateSuite))
}

func (s *ValidateSuite) SetupTest() {
	s.def = Definition{
		ID:    "intake",
		Label: "Intake",
		Fields: []Field{
			Number("age").Between(0, 130),
			Bool("smoker"),
			Enum("sex", "female", "male"),
			Number("weight_kg").Positive().Optional(),
		},
		Compute: func(Inputs) Result { return Result{} },
	}
}

func (s *ValidateSuite) TestRequiredFields() {
	s.Run("all present and well formed passes", func() {
		v := Validate(s.def, map[string]any{"age": 40, "smoker": false, "sex": "male"})
		s.True(v.OK)
		s.Empty(v.Missing)
	})

	s.Run("every problem is reported in declaration order", func() {
		v := Validate(s.def, map[string]any{"sex": "unknown"})
		s.False(v.OK)
		s.Equal([]string{"age", "smoker", "sex"}, v.Missing)
	})

	s.Run("null counts as absent", func() {
		v := Validate(s.def, map[string]any{"age": nil, "smoker": true, "sex": "female"})
		s.False(v.OK)
		s.Equal([]string{"age"}, v.Missing)
	})
}

func (s *ValidateSuite) TestKinds() {
	base := func() map[string]any {
		return map[string]any{"age": 40.0, "smoker": true, "sex": "female"}
	}

	s.Run("numeric strings are rejected", func() {
		in := base()
		in["age"] = "40"
		s.Equal([]string{"age"}, Validate(s.def, in).Missing)
	})

	s.Run("non-finite numbers are rejected", func() {
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			in := base()
			in["age"] = bad
			s.Equal([]string{"age"}, Validate(s.def, in).Missing)
		}
	})

	s.Run("json numbers and integer types are accepted", func() {
		for _, good := range []any{json.Number("40"), int64(40), uint8(40), float32(40)} {
			in := base()
			in["age"] = good
			s.True(Validate(s.def, in).OK, "value %T", good)
		}
	})

	s.Run("out of range numbers are rejected", func() {
		in := base()
		in["age"] = 131
		s.Equal([]string{"age"}, Validate(s.def, in).Missing)
	})

	s.Run("booleans must be literal", func() {
		for _, bad := range []any{"true", 1, 0.0} {
			in := base()
			in["smoker"] = bad
			s.Equal([]string{"smoker"}, Validate(s.def, in).Missing)
		}
	})

	s.Run("enumerated values must match exactly", func() {
		in := base()
		in["sex"] = "Female"
		s.Equal([]string{"sex"}, Validate(s.def, in).Missing)
	})
}

func (s *ValidateSuite) TestOptionalAndExtraFields() {
	s.Run("absent optional field is fine", func() {
		v := Validate(s.def, map[string]any{"age": 1, "smoker": false, "sex": "male"})
		s.True(v.OK)
	})

	s.Run("present optional field is still checked", func() {
		v := Validate(s.def, map[string]any{"age": 1, "smoker": false, "sex": "male", "weight_kg": 0})
		s.False(v.OK)
		s.Equal([]string{"weight_kg"}, v.Missing)
	})

	s.Run("unknown keys are ignored", func() {
		v := Validate(s.def, map[string]any{"age": 1, "smoker": false, "sex": "male", "shoe_size": "42"})
		s.True(v.OK)
	})
}

func TestPrepareStripsUndeclaredKeys(t *testing.T) {
	def := Definition{
		ID:      "strip",
		Label:   "Strip",
		Fields:  []Field{Number("a")},
		Compute: func(Inputs) Result { return nil },
	}
	in, verdict := prepare(def, map[string]any{"a": 2, "b": 3})
	assert.True(t, verdict.OK)
	assert.Equal(t, 1, in.Len())
	assert.True(t, in.Has("a"))
	assert.False(t, in.Has("b"))
	assert.Equal(t, 2.0, in.Float("a"))
}

func TestIntegerFields(t *testing.T) {
	def := Definition{
		ID:      "gcs_like",
		Label:   "GCS like",
		Fields:  []Field{Number("eye").Between(1, 4).Integer()},
		Compute: func(Inputs) Result { return nil },
	}
	assert.True(t, Validate(def, map[string]any{"eye": 3}).OK)
	assert.True(t, Validate(def, map[string]any{"eye": 3.0}).OK)
	assert.Equal(t, []string{"eye"}, Validate(def, map[string]any{"eye": 2.5}).Missing)
	assert.Equal(t, []string{"eye"}, Validate(def, map[string]any{"eye": 5}).Missing)
}

func TestDescribe(t *testing.T) {
	def := Definition{
		ID:    "described",
		Label: "Described",
		Fields: []Field{
			Number("weight_kg").Positive(),
			Number("eye").Between(1, 4).Integer(),
			Enum("sex", "female", "male").Optional(),
			Bool("smoker"),
		},
		Compute: func(Inputs) Result { return nil },
	}
	d := def.Describe()
	assert.Equal(t, "described", d.ID)
	if assert.Len(t, d.Inputs, 4) {
		assert.Equal(t, "numeric", d.Inputs[0].Kind)
		assert.True(t, d.Inputs[0].MinExclusive)
		assert.Equal(t, 0.0, *d.Inputs[0].Min)
		assert.True(t, d.Inputs[1].Integer)
		assert.Equal(t, 4.0, *d.Inputs[1].Max)
		assert.Equal(t, "enumerated", d.Inputs[2].Kind)
		assert.False(t, d.Inputs[2].Required)
		assert.Equal(t, []string{"female", "male"}, d.Inputs[2].Allowed)
		assert.Equal(t, "boolean", d.Inputs[3].Kind)
	}
	assert.Equal(t, Summary{ID: "described", Label: "Described"}, def.Summary())
}
