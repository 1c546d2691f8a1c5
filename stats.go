// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv

import "code.hybscloud.com/atomix"

// heapAllocs counts payload heap placements: every time a value is set,
// cloned, or moved into a container and does not fit the inline buffer.
// Pointer steals between containers do not count, since no new block is
// created.
var heapAllocs atomix.Int64

// HeapAllocs returns the cumulative number of payload heap placements
// performed by this package. Useful for asserting that a hot path stays
// on the inline buffer.
func HeapAllocs() int64 {
	return heapAllocs.Load()
}
