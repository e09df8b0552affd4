package services

import "math/rand"

// Pick count charging step indices from [0, pathLen), drawn with replacement.
// Duplicate draws collapse, so the result may hold fewer than count steps.
func PickChargingSteps(rng *rand.Rand, pathLen int, count int) map[int]struct{} {
	steps := make(map[int]struct{}, count)
	if pathLen <= 0 || count <= 0 {
		return steps
	}

	for range count {
		steps[rng.Intn(pathLen)] = struct{}{}
	}
	return steps
}
