// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestBinomialDist(t *testing.T) {
	dist := BinomialDist{N: 5, P: 0.2}
	for k, want := range map[float64]float64{
		-1000: 0,
		-1:    0,
		0:     0.32768,
		1:     0.4096,
		2:     0.2048,
		2.5:   0.2048,
		3:     0.0512,
		4:     0.0064,
		5:     math.Pow(dist.P, 5),
		6:     0,
		1000:  0,
	} {
		if got := dist.PMF(k); !aeq(want, got) {
			t.Errorf("%+v.PMF(%v) = %v, want %v", dist, k, got, want)
		}
	}

	// The CDF is the running sum of the PMF.
	sum := 0.0
	for k := -1; k <= dist.N+1; k++ {
		sum += dist.PMF(float64(k))
		if got := dist.CDF(float64(k)); !aeq(sum, got) {
			t.Errorf("%+v.CDF(%v) = %v, want %v", dist, k, got, sum)
		}
	}

	dist = BinomialDist{N: 30, P: 0.5}
	norm := dist.NormalApprox()
	for k := 10; k <= 20; k++ {
		b := dist.PMF(float64(k))
		n := norm.CDF(float64(k)+0.5) - norm.CDF(float64(k)-0.5)

		// The normal approximation isn't very close, even with
		// high N and P near 0.5, so only check the center and
		// be lax.
		if err := math.Abs(b/n - 1); err > 0.01 {
			t.Errorf("want %v ≅ %v at %d", b, n, k)
		}
	}
}

func TestBinomialDistSymmetric(t *testing.T) {
	for _, n := range []int{5, 10, 29, 30} {
		dist := BinomialDist{N: n, P: 0.5}
		for k := 0; k <= n; k++ {
			if a, b := dist.PMF(float64(k)), dist.PMF(float64(n-k)); a != b {
				t.Errorf("%+v: PMF(%d) = %v != PMF(%d) = %v", dist, k, a, n-k, b)
			}
		}
	}
}

func TestBinomialDistDegenerate(t *testing.T) {
	never := BinomialDist{N: 4, P: 0}
	if got := never.PMF(0); got != 1 {
		t.Errorf("P=0: PMF(0) = %v, want 1", got)
	}
	if got := never.PMF(1); got != 0 {
		t.Errorf("P=0: PMF(1) = %v, want 0", got)
	}
	always := BinomialDist{N: 4, P: 1}
	if got := always.PMF(4); got != 1 {
		t.Errorf("P=1: PMF(4) = %v, want 1", got)
	}
	if got := always.CDF(3); got != 0 {
		t.Errorf("P=1: CDF(3) = %v, want 0", got)
	}
}
