// Copyright 2024 The fastset Authors
// This file is part of fastset.
//
// fastset is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fastset is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fastset. If not, see <http://www.gnu.org/licenses/>.

package intset

import "github.com/prometheus/client_golang/prometheus"

// RegisterMetrics registers gauges reporting the interner's live state
// (distinct interned values and the sum of their refcounts) against reg.
// Wiring it is optional: the interner works identically with no registry
// attached. Call it at most once per registry.
func RegisterMetrics(reg prometheus.Registerer) error {
	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fastset_interner_entries",
		Help: "Number of distinct interned u32 set payloads currently live.",
	}, func() float64 {
		n, _ := global.liveStats()
		return float64(n)
	})
	totalRefs := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fastset_interner_total_refs",
		Help: "Sum of refcounts across all interned u32 set payloads.",
	}, func() float64 {
		_, refs := global.liveStats()
		return float64(refs)
	})

	if err := reg.Register(entries); err != nil {
		return err
	}
	return reg.Register(totalRefs)
}
