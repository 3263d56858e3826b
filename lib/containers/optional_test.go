// Copyright (C) 2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lukeshu.com/go/intervalmap/lib/containers"
)

type optionalPair struct {
	Beg containers.Optional[int]
	End containers.Optional[int]
}

func TestOptionalJSON(t *testing.T) {
	t.Parallel()
	in := optionalPair{
		End: containers.OptionalValue(5),
	}

	var buf bytes.Buffer
	require.NoError(t, lowmemjson.NewEncoder(&buf).Encode(in))
	assert.JSONEq(t, `{"Beg":null,"End":5}`, buf.String())

	var out optionalPair
	require.NoError(t, lowmemjson.NewDecoder(strings.NewReader(buf.String())).Decode(&out))
	assert.Equal(t, in, out)

	assert.Error(t, lowmemjson.NewDecoder(strings.NewReader(`{"Beg":nope,"End":1}`)).Decode(&out))
}

func TestOptionalString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "none", containers.Optional[int]{}.String())
	assert.Equal(t, "7", containers.OptionalValue(7).String())
	assert.Equal(t, "7", fmt.Sprint(containers.OptionalValue(containers.NativeOrdered[int]{Val: 7})))
}
