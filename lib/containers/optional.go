// Copyright (C) 2022-2024  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package containers

import (
	"fmt"
	"io"

	"git.lukeshu.com/go/lowmemjson"
)

// Optional is a T that may be absent.  In an IntervalMap, an absent
// endpoint means "unbounded".
type Optional[T any] struct {
	OK  bool
	Val T
}

func OptionalValue[T any](val T) Optional[T] {
	return Optional[T]{OK: true, Val: val}
}

var (
	_ lowmemjson.Encodable = Optional[bool]{}
	_ lowmemjson.Decodable = (*Optional[bool])(nil)
	_ fmt.Stringer         = Optional[bool]{}
)

// EncodeJSON implements lowmemjson.Encodable.
func (o Optional[T]) EncodeJSON(w io.Writer) error {
	if !o.OK {
		_, err := io.WriteString(w, "null")
		return err
	}
	return lowmemjson.NewEncoder(w).Encode(o.Val)
}

// DecodeJSON implements lowmemjson.Decodable.
func (o *Optional[T]) DecodeJSON(r io.RuneScanner) error {
	c, _, err := r.ReadRune()
	if err != nil {
		return err
	}
	if c == 'n' {
		for _, want := range "ull" {
			c, _, err := r.ReadRune()
			if err != nil {
				return err
			}
			if c != want {
				return fmt.Errorf("invalid character %q in literal null (expecting %q)", c, want)
			}
		}
		*o = Optional[T]{}
		return nil
	}
	if err := r.UnreadRune(); err != nil {
		return err
	}
	o.OK = true
	return lowmemjson.NewDecoder(r).Decode(&o.Val)
}

// String implements fmt.Stringer.
func (o Optional[T]) String() string {
	if !o.OK {
		return "none"
	}
	return fmt.Sprint(o.Val)
}
