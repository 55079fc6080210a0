package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
		{5, 10, 0, 5}, // swapped bounds
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		got := Clamp(tt.value, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-15, 1e-12) {
		t.Error("values within eps should compare equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Error("distant values should not compare equal")
	}

	if !NearlyEqual(1e12, 1e12+1, 1e-9) {
		t.Error("relative comparison should absorb small differences at large magnitude")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-31); got != 0 {
		t.Errorf("FlushDenormals(1e-31) = %v, want 0", got)
	}

	if got := FlushDenormals(1e-20); got != 1e-20 {
		t.Errorf("FlushDenormals(1e-20) = %v, want unchanged", got)
	}

	if got := FlushDenormals(-1e-31); got != 0 {
		t.Errorf("FlushDenormals(-1e-31) = %v, want 0", got)
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(1); got != 0 {
		t.Errorf("LinearToDB(1) = %v, want 0", got)
	}

	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Errorf("LinearToDB(0) = %v, want -Inf", got)
	}

	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Errorf("LinearToDB(-1) = %v, want NaN", got)
	}

	if got := LinearToDB(10); math.Abs(got-20) > 1e-12 {
		t.Errorf("LinearToDB(10) = %v, want 20", got)
	}
}
