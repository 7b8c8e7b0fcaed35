// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/model"
)

type wireFixture struct {
	Category string            `json:"category" cbor:"category" msgpack:"category"`
	Part     []string          `json:"part" cbor:"part" msgpack:"part"`
	Attrs    map[string]string `json:"attrs" cbor:"attrs" msgpack:"attrs"`
}

func TestCodecs_RoundTrip(t *testing.T) {
	original := wireFixture{
		Category: "AperiodicAsynchronousDataflow",
		Part:     []string{"A", "B", "buf0"},
		Attrs:    map[string]string{"scale_factor": "1"},
	}

	for _, c := range model.Codecs {
		c := c
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(original)
			require.NoError(t, err)

			var decoded wireFixture
			require.NoError(t, c.Unmarshal(data, &decoded))
			require.Equal(t, original, decoded)
		})
	}
}
