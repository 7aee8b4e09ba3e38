// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
)

// VectorClock maps a device ID to the number of content mutations that device
// has made to a file. A missing key is equivalent to a zero counter.
//
// VectorClock values are treated as immutable: every operation returns a new
// clock and never changes the receiver. Callers that need to modify a clock
// must go through [VectorClock.Increment] or [VectorClock.Merge].
type VectorClock map[string]int64

// ClockRelation is the causal relation between two vector clocks.
type ClockRelation string

const (
	// ClockEqual means both clocks carry exactly the same knowledge.
	ClockEqual ClockRelation = "equal"

	// ClockBefore means the left clock causally precedes the right one.
	// Local state is stale and must be downloaded.
	ClockBefore ClockRelation = "before"

	// ClockAfter means the left clock causally follows the right one.
	// Local state is newer and must be uploaded.
	ClockAfter ClockRelation = "after"

	// ClockConcurrent means the clocks disagree in both directions. Such
	// versions cannot be ordered and require explicit resolution.
	ClockConcurrent ClockRelation = "concurrent"
)

// Inverse returns the relation seen from the other side of the comparison.
func (r ClockRelation) Inverse() ClockRelation {
	switch r {
	case ClockBefore:
		return ClockAfter
	case ClockAfter:
		return ClockBefore
	default:
		return r
	}
}

// NewVectorClock returns an empty clock.
func NewVectorClock() VectorClock {
	return VectorClock{}
}

// Clone returns a deep copy of the clock. Cloning nil yields an empty clock.
func (c VectorClock) Clone() VectorClock {
	clone := make(VectorClock, len(c))
	maps.Copy(clone, c)
	return clone
}

// IsEmpty reports whether no device has recorded a mutation.
func (c VectorClock) IsEmpty() bool {
	for _, counter := range c {
		if counter > 0 {
			return false
		}
	}
	return true
}

// Get returns the counter for deviceID, or 0 when it is absent.
func (c VectorClock) Get(deviceID string) int64 {
	return c[deviceID]
}

// Increment returns a copy of the clock with the counter of deviceID
// advanced by one.
func (c VectorClock) Increment(deviceID string) VectorClock {
	next := c.Clone()
	next[deviceID] = c[deviceID] + 1
	return next
}

// Merge returns the component-wise maximum of both clocks over the union of
// their keys.
func (c VectorClock) Merge(other VectorClock) VectorClock {
	merged := c.Clone()
	for device, counter := range other {
		if counter > merged[device] {
			merged[device] = counter
		}
	}
	return merged
}

// Compare returns the causal relation of c to other. It is total: any pair of
// clocks, nil included, yields exactly one of the four relations.
func (c VectorClock) Compare(other VectorClock) ClockRelation {
	var less, greater bool

	for _, device := range unionKeys(c, other) {
		a, b := c[device], other[device]
		switch {
		case a < b:
			less = true
		case a > b:
			greater = true
		}
		if less && greater {
			return ClockConcurrent
		}
	}

	switch {
	case less:
		return ClockBefore
	case greater:
		return ClockAfter
	default:
		return ClockEqual
	}
}

// Equal reports whether both clocks carry the same counters, treating absent
// keys as zero.
func (c VectorClock) Equal(other VectorClock) bool {
	return c.Compare(other) == ClockEqual
}

// Devices returns the sorted device IDs with a positive counter.
func (c VectorClock) Devices() []string {
	devices := make([]string, 0, len(c))
	for device, counter := range c {
		if counter > 0 {
			devices = append(devices, device)
		}
	}
	slices.Sort(devices)
	return devices
}

func unionKeys(a, b VectorClock) []string {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keys))
}
