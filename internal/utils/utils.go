package utils

import (
	"fmt"
	"math"

	"github.com/fieldmaker/verify-backend/internal/appenv"
)

func Clamp(x, min, max int) int {
	if x < min {
		x = min
	} else if x > max {
		x = max
	}
	return x
}

func SafeIntToInt32(v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of range for int32", v)
	}
	return int32(v), nil
}

func Assert(ok bool, v any) {
	if !ok {
		panic(v)
	}
}

// AssertDev panics only outside of prod. Use it for programmer errors we
// want to surface loudly while developing.
func AssertDev(ok bool, v any) {
	if !ok && appenv.IsStagOrLocal() {
		panic(v)
	}
}

// usage e.g:
//
//	func success() (int, error) {
//		return 0, nil
//	}
//	n1 := Must(success())
func Must[T any](d T, err error) T {
	if err != nil {
		panic(err)
	}
	return d
}
