package progress

import "math"

// Round takes the fractional part of x, scales it to 0-100 and rounds it to
// the nearest multiple of step. Ties round to the even multiple, so
// Round(0.25, 50) is 0 and Round(0.75, 50) is 100.
func Round(x float64, step int) int {
	if step <= 0 {
		return 0
	}
	_, frac := math.Modf(x)
	return int(math.RoundToEven(frac*100/float64(step))) * step
}

// digits is the printed width of n in base 10.
func digits(n int) int {
	d := 1
	if n < 0 {
		d++
		n = -n
	}
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
