package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretBoundaries(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name  string
		score float64
		want  Grade
	}{
		{name: "zero", score: 0, want: GradeVerySatisfied},
		{name: "twenty inclusive", score: 20, want: GradeVerySatisfied},
		{name: "just over twenty", score: 20.01, want: GradeSatisfied},
		{name: "thirty five inclusive", score: 35, want: GradeSatisfied},
		{name: "fifty inclusive", score: 50, want: GradeNeutral},
		{name: "sixty five inclusive", score: 65, want: GradeDisappointed},
		{name: "eighty inclusive", score: 80, want: GradeRegretful},
		{name: "just over eighty", score: 80.01, want: GradeVeryRegretful},
		{name: "maximum", score: 100, want: GradeVeryRegretful},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Interpret(tt.score)
			assert.Equal(t, tt.want, got.Grade)
			assert.NotEmpty(t, got.Label)
			assert.NotEmpty(t, got.Color)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestInterpretDistinguishesTopTiers(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// The five-bucket distribution lumps everything above 65 together; the
	// interpreter still splits regretful from very regretful at 80.
	assert.NotEqual(t, e.Interpret(70).Grade, e.Interpret(90).Grade)
}
