/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package operator

import (
	"math/rand"
	"sync"

	"github.com/avast/retry-go"
)

// maxRejectionAttempts bounds every random-distinct-value rejection
// loop below. The source this was ported from retries unboundedly
// until a distinct value is drawn; for degenerate ranges (e.g. a
// single-element domain) that can spin forever. Here, exhausting the
// budget simply means the call site emits no mutant for that match,
// which is the conservative direction to fail in.
const maxRejectionAttempts = 20

// rng is process-wide and mutex-guarded: math/rand's default source is
// not safe for concurrent use, and operators run under the shared
// discovery/generation worker pool.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(1))
)

// Seed reseeds the shared random source, for reproducible runs.
func Seed(seed int64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewSource(seed))
}

func intn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()

	return rng.Intn(n)
}

func int63() int64 {
	rngMu.Lock()
	defer rngMu.Unlock()

	return rng.Int63()
}

func float64Val() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()

	return rng.Float64()
}

// distinctIndex picks a random index in [0,n) other than exclude,
// retrying (bounded) until it differs. Returns false if n ≤ 1 or the
// retry budget is exhausted, in which case the caller should emit no
// mutant.
func distinctIndex(n, exclude int) (int, bool) {
	if n <= 1 {
		return 0, false
	}
	var chosen int
	err := retry.Do(
		func() error {
			chosen = intn(n)
			if chosen == exclude {
				return errNotDistinct
			}

			return nil
		},
		retry.Attempts(maxRejectionAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
	)

	return chosen, err == nil
}

var errNotDistinct = &rejectionError{"rejection sampling did not converge"}

type rejectionError struct{ msg string }

func (e *rejectionError) Error() string { return e.msg }

// distinctInt32 draws a random int32 in [min,max] distinct from
// original, bounded by maxRejectionAttempts.
func distinctInt32(original, min, max int32) (int32, bool) {
	var v int32
	err := retry.Do(
		func() error {
			v = min + int32(intn(int(int64(max)-int64(min)+1)))
			if v == original {
				return errNotDistinct
			}

			return nil
		},
		retry.Attempts(maxRejectionAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
	)

	return v, err == nil
}

// distinctInt64 draws a random int64 distinct from original, uniform
// over the full int64 range, bounded by maxRejectionAttempts.
func distinctInt64(original int64) (int64, bool) {
	var v int64
	err := retry.Do(
		func() error {
			v = int63()
			if intn(2) == 0 {
				v = -v
			}
			if v == original {
				return errNotDistinct
			}

			return nil
		},
		retry.Attempts(maxRejectionAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
	)

	return v, err == nil
}

// distinctFloat draws a random float64 in [0,1) distinct from
// original, bounded by maxRejectionAttempts.
func distinctFloat(original float64) (float64, bool) {
	var v float64
	err := retry.Do(
		func() error {
			v = float64Val()
			if v == original {
				return errNotDistinct
			}

			return nil
		},
		retry.Attempts(maxRejectionAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
	)

	return v, err == nil
}

// distinctLowercase draws a random lowercase ASCII letter distinct
// from original, bounded by maxRejectionAttempts.
func distinctLowercase(original byte) (byte, bool) {
	var v byte
	err := retry.Do(
		func() error {
			v = byte('a' + intn(26))
			if v == original {
				return errNotDistinct
			}

			return nil
		},
		retry.Attempts(maxRejectionAttempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
	)

	return v, err == nil
}
