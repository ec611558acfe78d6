// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import "io"

// alphaReader sanitizes an ASCII85-encoded stream before it reaches the
// standard decoder: bytes outside the '!'..'u' alphabet are zeroed, and
// everything from the "~>" terminator on is zeroed as well. Some producers
// pad streams with stray bytes after the terminator, which the decoder
// would otherwise reject.
type alphaReader struct {
	reader io.Reader
	done   bool
}

func newAlphaReader(r io.Reader) *alphaReader {
	return &alphaReader{reader: r}
}

func (a *alphaReader) Read(p []byte) (int, error) {
	n, err := a.reader.Read(p)
	if err != nil {
		return n, err
	}
	for i := 0; i < n; i++ {
		c := p[i]
		switch {
		case a.done:
			p[i] = 0
		case c == '~':
			a.done = true
			p[i] = 0
		case '!' <= c && c <= 'u':
			// valid ASCII85 byte, keep
		default:
			p[i] = 0
		}
	}
	return n, nil
}
