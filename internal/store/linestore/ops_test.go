package linestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todo/internal/model"
)

func sample() []model.Record {
	return []model.Record{
		{Done: true, Text: "a"},
		{Urgent: true, Text: "b"},
		{Text: "c"},
	}
}

func TestApplyAdd(t *testing.T) {
	in := sample()
	out, err := Apply(in, Add("d"))
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, model.Record{Text: "d"}, out[3])
	assert.Equal(t, sample(), in, "input must not change")

	out, err = Apply(nil, Add("first"))
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{Text: "first"}}, out)
}

func TestApplyAddRejectsBadText(t *testing.T) {
	_, err := Apply(sample(), Add("a\nb"))
	assert.ErrorIs(t, err, ErrInvalidText)
	_, err = Apply(sample(), Add(" "))
	assert.ErrorIs(t, err, ErrInvalidText)
}

func TestApplyRemove(t *testing.T) {
	in := sample()
	out, err := Apply(in, Remove(1))
	require.NoError(t, err)
	assert.Len(t, out, len(in)-1)
	assert.Equal(t, []model.Record{in[0], in[2]}, out)
	assert.Equal(t, sample(), in, "input must not change")

	out, err = Apply(in, Remove(0))
	require.NoError(t, err)
	assert.Equal(t, in[1], out[0], "old id 1 is now id 0")
}

func TestApplyClear(t *testing.T) {
	out, err := Apply(sample(), Clear())
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Apply(nil, Clear())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestApplyToggleDone(t *testing.T) {
	in := sample()
	out, err := Apply(in, ToggleDone(0))
	require.NoError(t, err)
	assert.Equal(t, model.Record{Done: false, Text: "a"}, out[0])
	assert.Equal(t, in[1:], out[1:])
	assert.True(t, in[0].Done, "input must not change")

	back, err := Apply(out, ToggleDone(0))
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestApplyToggleUrgent(t *testing.T) {
	in := []model.Record{{Done: true, Text: "a"}, {Urgent: true, Text: "b"}}
	out, err := Apply(in, ToggleUrgent(0))
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{Done: true, Urgent: true, Text: "a"}, {Urgent: true, Text: "b"}}, out)

	back, err := Apply(out, ToggleUrgent(0))
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestApplyInvalidID(t *testing.T) {
	in := sample()
	for _, op := range []Op{
		Remove(3), ToggleDone(3), ToggleUrgent(3),
		Remove(-1), ToggleDone(100),
	} {
		t.Run(op.Kind.String(), func(t *testing.T) {
			out, err := Apply(in, op)
			assert.ErrorIs(t, err, ErrInvalidID)
			assert.Nil(t, out)
		})
	}

	_, err := Apply(nil, Remove(0))
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "urgent", KindToggleUrgent.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
