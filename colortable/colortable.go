/*
NAME
  colortable.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package colortable provides a precomputed 8-bit to sRGB lookup table used
// throughout the photosensitivity analysis pipeline to avoid repeating the
// sRGB gamma expansion for every pixel of every frame.
package colortable

import "math"

const size = 256

// Table is an immutable 256-entry lookup from an 8-bit channel value to its
// normalised sRGB float equivalent. The zero value is not usable; construct
// with New.
type Table struct {
	values [size]float32
}

// New builds a Table. Construction can never fail.
func New() *Table {
	var t Table
	for i := 0; i < size; i++ {
		v := float32(i) / 255
		if v <= 0.04045 {
			t.values[i] = v / 12.92
		} else {
			t.values[i] = float32(math.Pow(float64((v+0.055)/1.055), 2.4))
		}
	}
	return &t
}

// Lookup returns the precomputed sRGB value for an 8-bit channel byte.
func (t *Table) Lookup(channel uint8) float32 {
	return t.values[channel]
}
