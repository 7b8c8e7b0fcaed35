// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package opaque_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/model"
	"github.com/luxfi/idesyde/opaque"
)

type concreteX struct {
	part map[string]struct{}
}

func (c *concreteX) Category() string          { return "X" }
func (c *concreteX) Part() map[string]struct{} { return c.part }
func (c *concreteX) BodyText() (string, bool)  { return "", false }
func (c *concreteX) BodyBinary() ([]byte, bool) { return nil, false }

func TestEnvelope_RoundTrip(t *testing.T) {
	env := opaque.New("X", model.ElementSet("e1", "e2")).WithText("hello").WithFormat("fiodl")

	for _, c := range model.Codecs {
		data, err := env.Marshal(c)
		require.NoError(t, err)

		decoded, err := opaque.Unmarshal(c, data)
		require.NoError(t, err)
		require.Equal(t, env.Category(), decoded.Category())
		require.Equal(t, env.Part(), decoded.Part())
		text, ok := decoded.BodyText()
		require.True(t, ok)
		require.Equal(t, "hello", text)
	}
}

func TestEnvelope_IsOpaque(t *testing.T) {
	env := opaque.New("X", model.ElementSet("e1"))
	require.True(t, model.IsOpaque(env))

	concrete := &concreteX{part: model.ElementSet("e1")}
	require.False(t, model.IsOpaque(concrete))
}

func TestReplaceable(t *testing.T) {
	env := opaque.New("X", model.ElementSet("e1", "e2"))
	concrete := &concreteX{part: model.ElementSet("e1", "e2")}

	require.True(t, opaque.Replaceable(env, concrete))
	require.False(t, opaque.Replaceable(concrete, env))

	smallerConcrete := &concreteX{part: model.ElementSet("e1")}
	require.False(t, opaque.Replaceable(env, smallerConcrete))
}
